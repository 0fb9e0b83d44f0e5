package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a tenant-scoped lookup matches no row.
// A row owned by another tenant is indistinguishable from an absent one.
var ErrNotFound = errors.New("not found")

// NotFoundError reports which entity and identifier could not be resolved
// within the caller's tenant. It unwraps to ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError reports a rejected field on a write request. Writes that
// fail validation never reach the database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
