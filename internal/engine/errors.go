package engine

import "errors"

var (
	// ErrDataUnavailable means the store could not be loaded or cleaned.
	// No query may run without a store.
	ErrDataUnavailable = errors.New("data unavailable")

	ErrMalformedInput = errors.New("malformed input")
	ErrInvalidField   = errors.New("invalid field")
)
