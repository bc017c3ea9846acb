package service

import "errors"

var (
	// ErrValidation covers bad user input: empty, non-numeric, or
	// out-of-range fields. The wrapped message names the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers references to an unknown oil type or vehicle.
	ErrNotFound = errors.New("not found")

	// ErrPersistence covers store I/O failures. The operation that raised it
	// has been rolled back; no partial update is visible.
	ErrPersistence = errors.New("persistence failure")
)
