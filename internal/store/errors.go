package store

import "errors"

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write would violate the
	// unique email index.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrInvalidID is returned when an id is not a well-formed UUID.
	ErrInvalidID = errors.New("invalid user id format")
)
