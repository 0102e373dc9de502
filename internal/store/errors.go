package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrHeroNotFound indicates that the requested hero does not exist in the store.
	ErrHeroNotFound = fmt.Errorf("%w: hero", ErrNotFound)

	// ErrHeroExists indicates that a hero with the given name already exists.
	// This is returned when an insert loses a race against a concurrent create
	// for the same name.
	ErrHeroExists = fmt.Errorf("%w: hero name", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
