package schema

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when a property is read from a schema
// that has no underlying representation yet.
var ErrNotInitialized = errors.New("schema not initialized")

// ErrNotFound is returned by Load when no array exists at the URI.
var ErrNotFound = errors.New("array not found")

// ErrInvalidSchema is returned by Load when the persisted bytes do not
// parse as a schema.
var ErrInvalidSchema = errors.New("invalid persisted schema")

// ErrAlreadyExists is returned by Create when an array is already
// materialized at the target URI.
var ErrAlreadyExists = errors.New("array already exists")

// ValidationError reports a cross-field invariant violation found by
// Check. Reason carries the human-readable cause from the lowest layer
// that detected it.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func validationErrf(field string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...), Err: err}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema validation failed: %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("schema validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
