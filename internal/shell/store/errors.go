// Package store provides persistence for the states dataset.
package store

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotFound is returned when a state is not found.
	ErrNotFound = errors.New("state not found")

	// ErrDuplicateSlug is returned when inserting a state with an existing slug.
	ErrDuplicateSlug = errors.New("state with this slug already exists")

	// ErrConnectionFailed is returned when database connection fails.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrMigrationFailed is returned when database migration fails.
	ErrMigrationFailed = errors.New("database migration failed")

	// ErrInvalidSort is returned when an unknown sort column is requested.
	ErrInvalidSort = errors.New("invalid sort column")
)

// StoreError wraps errors with additional context.
type StoreError struct {
	Op      string // Operation that failed (e.g., "ListStates")
	Slug    string // State slug if applicable
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Slug, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, slug, message string, err error) *StoreError {
	return &StoreError{
		Op:      op,
		Slug:    slug,
		Message: message,
		Err:     err,
	}
}
