package domain

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrNotConfirmed = errors.New("delete was not confirmed")
	ErrValidation   = errors.New("validation failed")
)

// ValidationError is a user-facing validation message. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
