package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/hero-api/internal/api/shared"
	"github.com/phrazzld/hero-api/internal/domain"
)

func decodeInto(t *testing.T, body string, dst any) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/hero", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return shared.DecodeValidated(req, dst)
}

func decodeErrors(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Errors
}

func TestHeroCreateRequestValidation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var req HeroCreateRequest
		err := decodeInto(t, `{"email":"test@test.com","password":"strongPWD_123"}`, &req)
		require.NoError(t, err)
		assert.Equal(t, "test@test.com", req.Email)
		assert.Equal(t, "strongPWD_123", req.Password)
	})

	t.Run("too short", func(t *testing.T) {
		var req HeroCreateRequest
		err := decodeInto(t, `{"email":"ab","password":"abcd"}`, &req)
		assert.Equal(t, []string{
			"email must be longer than or equal to 3 characters",
			"password must be longer than or equal to 5 characters",
		}, decodeErrors(t, err))
	})

	t.Run("undeclared key", func(t *testing.T) {
		var req HeroCreateRequest
		err := decodeInto(t, `{"email":"test@test.com","password":"strongPWD_123","admin":true}`, &req)
		assert.Equal(t, []string{"property admin should not exist"}, decodeErrors(t, err))
	})
}

func TestHeroRequestValidation(t *testing.T) {
	t.Run("zero attribute fails the range rule", func(t *testing.T) {
		var req HeroRequest
		err := decodeInto(t, `{"name":"Aquaman","strength":0,"dexterity":20,"intellect":66,"isInvincible":true}`, &req)
		assert.Equal(t, []string{"strength must not be less than 1"}, decodeErrors(t, err))
	})

	t.Run("absent attribute fails the required rule", func(t *testing.T) {
		var req HeroRequest
		err := decodeInto(t, `{"name":"Aquaman","dexterity":20,"intellect":66,"isInvincible":true}`, &req)
		assert.Equal(t, []string{"strength should not be null or undefined"}, decodeErrors(t, err))
	})

	t.Run("converter carries every field", func(t *testing.T) {
		var req HeroRequest
		err := decodeInto(t, `{"name":"Aquaman","strength":50,"dexterity":20,"intellect":66,"isInvincible":true}`, &req)
		require.NoError(t, err)
		assert.Equal(t, domain.Hero{
			Name:         "Aquaman",
			Strength:     50,
			Dexterity:    20,
			Intellect:    66,
			IsInvincible: true,
		}, req.Hero())
	})
}
