// Package domain holds the failure kinds shared by every aggregate. Aggregate
// packages define their own sentinels that wrap one of these kinds, so callers
// can branch on the kind with errors.Is.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing, inactive or foreign-tenant entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrStoreUnavailable marks a failed connectivity probe.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError carries a message that is safe to show to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Public returns the message shown to clients.
func (e *ValidationError) Public() string {
	return e.Message
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Kind wraps a kind with a more specific message, e.g. Kind(ErrNotFound, "form not found").
func Kind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string  { return e.msg }
func (e *kindError) Public() string { return e.msg }
func (e *kindError) Unwrap() error  { return e.kind }

// PublicMessage returns the client-safe message carried by err, if any.
func PublicMessage(err error) (string, bool) {
	var p interface{ Public() string }
	if errors.As(err, &p) {
		return p.Public(), true
	}
	return "", false
}
