package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStreamClosed     = errors.New("fragment stream closed without end message")
	ErrAlreadyBound     = errors.New("dispatcher already bound to a language")
	ErrModelUnavailable = errors.New("language model unavailable")
)
