package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier as string. Tests may
// replace it to obtain deterministic identifiers.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new opaque identifier.
func New() string { return NewFunc() }

// Named returns an identifier prefixed with name, e.g. "fetch/9f0c...".
// An empty name yields a bare identifier.
func Named(name string) string {
	if name == "" {
		return New()
	}
	return name + "/" + New()
}
