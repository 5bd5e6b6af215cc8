package domain

import "errors"

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Registry errors
	ErrNotFound        = errors.New("not found")
	ErrInvalidDigest   = errors.New("invalid digest")
	ErrInvalidEndpoint = errors.New("invalid registry endpoint")

	// Auth errors
	ErrAuthentication        = errors.New("authentication failed")
	ErrUnsupportedAuthMethod = errors.New("unsupported auth method")

	// Config errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConfigLoadFailed = errors.New("failed to load configuration")

	// Cleanup errors
	ErrDeletionsFailed = errors.New("one or more deletions could not be verified")
)
