// Package repository holds the errors every storage backend reports. Domain
// services translate them into domain failures.
package repository

import "errors"

var (
	// ErrNotFound is returned when no active, correctly scoped row matches.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict: unique constraint violated")
)
