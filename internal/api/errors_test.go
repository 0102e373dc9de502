package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/hero-api/internal/domain"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedErrors []string
	}{
		{
			name:           "unclassified error",
			err:            errors.New("database connection error"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "wrapped unclassified error",
			err:            fmt.Errorf("failed to list heroes: %w", errors.New("timeout")),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "validation error",
			err:            domain.NewValidationError("name must be longer than or equal to 4 characters"),
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"name must be longer than or equal to 4 characters"},
		},
		{
			name: "validation error with multiple messages",
			err: domain.NewValidationError(
				"strength must not be less than 1",
				"intellect must be a number",
			),
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{
				"strength must not be less than 1",
				"intellect must be a number",
			},
		},
		{
			name:           "wrapped validation error",
			err:            fmt.Errorf("handling request: %w", domain.NewValidationError("Aquaman doesn't exist")),
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"Aquaman doesn't exist"},
		},
		{
			name:           "status error keeps its declared status",
			err:            domain.NewStatusError(http.StatusNotFound),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Extract(tc.err)

			assert.Equal(t, tc.expectedStatus, result.Status)
			assert.Equal(t, fmt.Sprintf("Error code %d", tc.expectedStatus), result.Message)
			assert.Equal(t, tc.expectedErrors, result.Errors)
		})
	}
}

func TestHandleErrorBodyContract(t *testing.T) {
	t.Run("validation failure carries errors array", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/hero/Unknown", nil)

		HandleError(rr, req, domain.NewValidationError("Unknown doesn't exist"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, float64(http.StatusBadRequest), body["status"])
		assert.Equal(t, "Error code 400", body["message"])
		assert.Equal(t, []any{"Unknown doesn't exist"}, body["errors"])
	})

	t.Run("internal failure never leaks detail and omits errors key", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/hero", nil)

		HandleError(rr, req, errors.New("pq: connection refused at 10.0.0.3"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, float64(http.StatusInternalServerError), body["status"])
		assert.Equal(t, "Error code 500", body["message"])
		assert.NotContains(t, rr.Body.String(), "connection refused")
		_, hasErrors := body["errors"]
		assert.False(t, hasErrors, "errors key must be omitted for non-validation failures")
	})
}
