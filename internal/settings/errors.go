package settings

import "errors"

var (
	// ErrResourceLoad is returned when the default configuration resource cannot be loaded on first access.
	ErrResourceLoad = errors.New("cannot load configuration resource")
	// ErrResourceNotFound is returned by an Opener when the logical resource name does not resolve.
	ErrResourceNotFound = errors.New("configuration resource not found")
	// ErrInvalidFormat is returned when a stored value (or its fallback) does not parse as the requested type.
	ErrInvalidFormat = errors.New("configuration value has invalid format")
	// ErrKeyNotFound is returned by GetBool when the requested key is absent.
	ErrKeyNotFound = errors.New("configuration key not found")
)
