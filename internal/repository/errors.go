package repository

import "errors"

var (
	// ErrNotFound is returned when a row lookup matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert would violate the no-overlap
	// invariant, whether caught by the pre-check or by the database
	// exclusion constraint.
	ErrConflict = errors.New("overlapping reservation exists")
)
