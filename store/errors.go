package store

import "errors"

// Sentinel errors for the data layer. Stores and loaders wrap these with
// fmt.Errorf("...: %w", err); services translate them into apperrors via
// errors.Is.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates the write collided with an existing record.
	ErrConflict = errors.New("conflict")
)
