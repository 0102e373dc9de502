package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/hero-api/internal/api/shared"
	"github.com/phrazzld/hero-api/internal/domain"
)

// ErrorResult is the structured error body sent to clients:
// {status, message, errors?}. The errors array is present only for
// validation failures.
type ErrorResult struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Extract classifies an error into the HTTP status and structured body
// contract. Anything not HTTP-classified becomes a 500 with a generic
// message; raw error text is never echoed to the client.
func Extract(err error) ErrorResult {
	status := http.StatusInternalServerError

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.HTTPStatus()
	}

	result := ErrorResult{
		Status:  status,
		Message: fmt.Sprintf("Error code %d", status),
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		result.Errors = validationErr.Errors
	}

	return result
}

// HandleError maps err through Extract and writes the error body. Server
// errors are logged at ERROR level with full detail; client errors at DEBUG.
// This is the only place that formats failures for the boundary.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	result := Extract(err)

	level := slog.LevelDebug
	if result.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.LogAttrs(r.Context(), level, "API error response",
		slog.Int("status_code", result.Status),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.String("trace_id", shared.GetTraceID(r.Context())),
		slog.String("error", err.Error()),
	)

	shared.RespondWithJSON(w, r, result.Status, result)
}
