package store

import "errors"

// Sentinel errors shared by every store implementation. Handlers map these
// onto HTTP statuses; lookups that can reasonably miss return nil, nil
// instead of ErrNotFound.
var (
	// ErrNotFound is returned by mutations whose target does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned when an insert would violate a uniqueness
	// rule (username across accounts, one review per reviewer per landmark).
	ErrDuplicate = errors.New("store: already exists")
)
