package dao

import "errors"

// Sentinel errors returned by every store, match them with errors.Is.
var (
	// ErrNotFound is returned when no record exists for the key
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID is returned for an empty key
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when saving nil
	ErrNilEntity = errors.New("dao: nil entity")
)
