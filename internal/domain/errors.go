package domain

import "errors"

// Sentinel errors shared across services. Callers wrap them with context via
// fmt.Errorf("%w: ...") and the HTTP layer maps them onto status codes.
var (
	// ErrValidation signals the caller supplied an invalid or incomplete request.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a duplicate-key or concurrent-update conflict.
	ErrConflict = errors.New("conflict")
)
