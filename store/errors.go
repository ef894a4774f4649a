package store

import "errors"

var (
	// ErrNotFound is returned when a record doesn't exist or is deleted (has ttl <= now).
	ErrNotFound = errors.New("lattice: record not found")

	// ErrParentNotFound is returned when the container entity doesn't exist or is deleted.
	ErrParentNotFound = errors.New("lattice: container not found")

	// ErrAlreadyExists is returned when attempting to create a record with an existing ID.
	ErrAlreadyExists = errors.New("lattice: record already exists")

	// ErrConcurrentModification is returned when the optimistic lock fails (version mismatch).
	ErrConcurrentModification = errors.New("lattice: record was modified concurrently")

	// ErrDuplicateValue is returned when a unique constraint is violated.
	ErrDuplicateValue = errors.New("lattice: duplicate value for unique field")
)
