package store

import "errors"

// Sentinel errors returned by the store. Callers match them with errors.Is;
// the HTTP layer maps them onto status codes.
var (
	// Signup errors.
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("username or email already registered")

	// Login errors.
	ErrBadCredentials = errors.New("invalid credentials")

	// Item errors.
	ErrNotFound = errors.New("not found")

	// ErrCorruptCollection means a collection file exists on disk but does
	// not parse. It is surfaced at startup instead of being silently
	// replaced with an empty collection.
	ErrCorruptCollection = errors.New("corrupt collection file")
)
