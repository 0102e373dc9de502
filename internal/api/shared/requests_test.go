package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/hero-api/internal/domain"
)

// heroShape mirrors the hero create payload: pointer attributes so a
// present zero hits the range rule, not the required rule.
type heroShape struct {
	Name         string `json:"name"         validate:"required,min=4"`
	Strength     *int   `json:"strength"     validate:"required,min=1,max=100"`
	Dexterity    *int   `json:"dexterity"    validate:"required,min=1,max=100"`
	Intellect    *int   `json:"intellect"    validate:"required,min=1,max=100"`
	IsInvincible *bool  `json:"isInvincible" validate:"required"`
}

type updateShape struct {
	Strength     *int  `json:"strength"     validate:"omitempty,min=1,max=100"`
	Dexterity    *int  `json:"dexterity"    validate:"omitempty,min=1,max=100"`
	Intellect    *int  `json:"intellect"    validate:"omitempty,min=1,max=100"`
	IsInvincible *bool `json:"isInvincible"`
}

func newJSONRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/hero", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func validationErrors(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Errors
}

func TestDecodeValidatedSuccess(t *testing.T) {
	var dst heroShape
	err := DecodeValidated(
		newJSONRequest(
			t,
			`{"name":"Aquaman","strength":50,"dexterity":20,"intellect":66,"isInvincible":true}`,
		),
		&dst,
	)
	require.NoError(t, err)

	assert.Equal(t, "Aquaman", dst.Name)
	require.NotNil(t, dst.Strength)
	assert.Equal(t, 50, *dst.Strength)
	require.NotNil(t, dst.Dexterity)
	assert.Equal(t, 20, *dst.Dexterity)
	require.NotNil(t, dst.Intellect)
	assert.Equal(t, 66, *dst.Intellect)
	require.NotNil(t, dst.IsInvincible)
	assert.True(t, *dst.IsInvincible)
}

func TestDecodeValidatedEmptyBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no body", body: ""},
		{name: "whitespace body", body: "   "},
		{name: "empty object", body: "{}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var dst heroShape
			err := DecodeValidated(newJSONRequest(t, tc.body), &dst)
			assert.Equal(t, []string{MsgBodyRequired}, validationErrors(t, err))
		})
	}

	t.Run("empty object on update shape", func(t *testing.T) {
		// The empty-body rule applies regardless of shape, even when every
		// field of the shape is optional.
		var dst updateShape
		err := DecodeValidated(newJSONRequest(t, "{}"), &dst)
		assert.Equal(t, []string{MsgBodyRequired}, validationErrors(t, err))
	})
}

func TestDecodeValidatedUnknownKey(t *testing.T) {
	var dst heroShape
	err := DecodeValidated(
		newJSONRequest(
			t,
			`{"name":"Aquaman","strength":50,"dexterity":20,"intellect":66,"isInvincible":true,"sidekick":"Aqualad"}`,
		),
		&dst,
	)

	// All declared fields are valid; the single undeclared key still fails
	// the whole request.
	assert.Equal(t, []string{"property sidekick should not exist"}, validationErrors(t, err))
}

func TestDecodeValidatedAccumulatesAllErrors(t *testing.T) {
	var dst heroShape
	err := DecodeValidated(
		newJSONRequest(t, `{"name":"Bob","strength":0,"dexterity":101,"intellect":"high"}`),
		&dst,
	)

	assert.Equal(t, []string{
		"name must be longer than or equal to 4 characters",
		"strength must not be less than 1",
		"dexterity must not be greater than 100",
		"intellect must be a number",
		"isInvincible should not be null or undefined",
	}, validationErrors(t, err))
}

func TestDecodeValidatedZeroVersusAbsent(t *testing.T) {
	t.Run("present zero fails the range rule", func(t *testing.T) {
		var dst heroShape
		err := DecodeValidated(
			newJSONRequest(t, `{"name":"Aquaman","strength":0,"dexterity":20,"intellect":66,"isInvincible":true}`),
			&dst,
		)
		assert.Equal(t, []string{"strength must not be less than 1"}, validationErrors(t, err))
	})

	t.Run("absent field fails the required rule", func(t *testing.T) {
		var dst heroShape
		err := DecodeValidated(
			newJSONRequest(t, `{"name":"Aquaman","dexterity":20,"intellect":66,"isInvincible":true}`),
			&dst,
		)
		assert.Equal(t, []string{"strength should not be null or undefined"}, validationErrors(t, err))
	})
}

func TestDecodeValidatedTypeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "string for number",
			body:     `{"name":"Aquaman","strength":"fifty","dexterity":20,"intellect":66,"isInvincible":true}`,
			expected: "strength must be a number",
		},
		{
			name:     "number for string",
			body:     `{"name":7,"strength":50,"dexterity":20,"intellect":66,"isInvincible":true}`,
			expected: "name must be a string",
		},
		{
			name:     "string for boolean",
			body:     `{"name":"Aquaman","strength":50,"dexterity":20,"intellect":66,"isInvincible":"yes"}`,
			expected: "isInvincible must be a boolean value",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var dst heroShape
			err := DecodeValidated(newJSONRequest(t, tc.body), &dst)
			assert.Equal(t, []string{tc.expected}, validationErrors(t, err))
		})
	}
}

func TestDecodeValidatedOptionalFieldsSkipped(t *testing.T) {
	var dst updateShape
	err := DecodeValidated(newJSONRequest(t, `{"strength":10}`), &dst)
	require.NoError(t, err)

	require.NotNil(t, dst.Strength)
	assert.Equal(t, 10, *dst.Strength)
	assert.Nil(t, dst.Dexterity)
	assert.Nil(t, dst.Intellect)
	assert.Nil(t, dst.IsInvincible)
}

func TestDecodeValidatedOptionalFieldStillConstrained(t *testing.T) {
	var dst updateShape
	err := DecodeValidated(newJSONRequest(t, `{"strength":500}`), &dst)
	assert.Equal(t, []string{"strength must not be greater than 100"}, validationErrors(t, err))
}

func TestDecodeValidatedNonObjectBody(t *testing.T) {
	var dst heroShape
	err := DecodeValidated(newJSONRequest(t, `[1,2,3]`), &dst)
	assert.Equal(t, []string{"Request body must be a JSON object"}, validationErrors(t, err))
}

func TestDecodeValidatedNestedObject(t *testing.T) {
	type location struct {
		City    string `json:"city"    validate:"required,min=3"`
		Country string `json:"country" validate:"required,min=2"`
	}
	type profile struct {
		Name     string   `json:"name" validate:"required,min=4"`
		Location location `json:"location"`
	}

	t.Run("valid nested payload", func(t *testing.T) {
		var dst profile
		err := DecodeValidated(
			newJSONRequest(t, `{"name":"Aquaman","location":{"city":"Atlantis","country":"US"}}`),
			&dst,
		)
		require.NoError(t, err)
		assert.Equal(t, "Atlantis", dst.Location.City)
	})

	t.Run("nested failures are parent-prefixed and semicolon-joined", func(t *testing.T) {
		var dst profile
		err := DecodeValidated(
			newJSONRequest(t, `{"name":"Aquaman","location":{"city":"At","country":""}}`),
			&dst,
		)
		assert.Equal(t, []string{
			"location: city must be longer than or equal to 3 characters; country should not be null or undefined",
		}, validationErrors(t, err))
	})

	t.Run("nested non-object value", func(t *testing.T) {
		var dst profile
		err := DecodeValidated(
			newJSONRequest(t, `{"name":"Aquaman","location":"Atlantis"}`),
			&dst,
		)
		assert.Equal(t, []string{"location must be an object"}, validationErrors(t, err))
	})

	t.Run("nested unknown key", func(t *testing.T) {
		var dst profile
		err := DecodeValidated(
			newJSONRequest(
				t,
				`{"name":"Aquaman","location":{"city":"Atlantis","country":"US","planet":"Earth"}}`,
			),
			&dst,
		)
		assert.Equal(t, []string{
			"location: property planet should not exist",
		}, validationErrors(t, err))
	})
}

func TestDecodeValidatedStripsExtraneousData(t *testing.T) {
	// A shape that declares fewer fields than the hero payload carries:
	// undeclared input is rejected, not silently dropped, so the typed value
	// only ever holds whitelisted fields.
	type slim struct {
		Name string `json:"name" validate:"required,min=4"`
	}

	var dst slim
	err := DecodeValidated(newJSONRequest(t, `{"name":"Aquaman"}`), &dst)
	require.NoError(t, err)
	assert.Equal(t, "Aquaman", dst.Name)
}
