package cache

import "errors"

var (
	// ErrInvalidKey is returned when a key is empty, is not a string, or contains
	// one of the reserved characters.
	ErrInvalidKey = errors.New("invalid cache key")

	// ErrInvalidArgument is returned for a TTL of an unsupported form or a bulk
	// argument that is not a supported collection shape.
	ErrInvalidArgument = errors.New("invalid cache argument")

	// ErrNotInitialized is returned by Default before InitDefault has been called.
	ErrNotInitialized = errors.New("default cache store is not initialized")
)
