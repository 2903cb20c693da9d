package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("registration store unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
)

// FieldError is an ErrInvalidInput tied to one request field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}
