package domain

import "errors"

var (
	// ErrClientNotFound is returned when an identifier does not resolve.
	ErrClientNotFound = errors.New("client not found")
	// ErrDuplicateEmail is returned when a create or update would violate
	// email uniqueness.
	ErrDuplicateEmail = errors.New("a client with this email already exists")
)
