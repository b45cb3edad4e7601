package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("not found")
)

// ConstraintViolationError is returned by repositories when a write is
// rejected by a unique constraint. Field names the violated attribute.
type ConstraintViolationError struct {
	Field      string
	Constraint string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("unique constraint %q violated on field %q", e.Constraint, e.Field)
}

// AsConstraintViolation reports whether err wraps a ConstraintViolationError.
func AsConstraintViolation(err error) (*ConstraintViolationError, bool) {
	var cv *ConstraintViolationError
	if errors.As(err, &cv) {
		return cv, true
	}
	return nil, false
}
