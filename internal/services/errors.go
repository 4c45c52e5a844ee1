package services

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for any failed login. It is
	// deliberately generic so a caller cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInternal replaces infrastructure failures at the service
	// boundary; the underlying cause is logged, never returned.
	ErrInternal = errors.New("internal server error")
)

// ValidationError reports one or more user-correctable input problems.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func validationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
