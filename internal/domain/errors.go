// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")
)

// HTTPError is implemented by errors that carry an HTTP status for the
// boundary layer. Everything else is normalized to a 500.
type HTTPError interface {
	error
	HTTPStatus() int
}

// StatusError is a plain HTTP-classified error without field detail.
type StatusError struct {
	Status int
}

// Error implements the error interface for StatusError.
func (e *StatusError) Error() string {
	return fmt.Sprintf("Error code %d", e.Status)
}

// HTTPStatus implements HTTPError.
func (e *StatusError) HTTPStatus() int {
	return e.Status
}

// NewStatusError creates a StatusError with the given status code.
func NewStatusError(status int) *StatusError {
	return &StatusError{Status: status}
}

// ValidationError is a client-caused failure carrying one or more ordered
// field-level messages. It always maps to a 400 response.
type ValidationError struct {
	Errors []string
}

// NewValidationError creates a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(e.Errors, "; "))
}

// HTTPStatus implements HTTPError.
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// Is lets errors.Is(err, domain.ErrValidation) match validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
