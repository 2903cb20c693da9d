package domain

import (
	"context"
	"time"
)

// Registration is a visitor's sign-up for the event. Email is the natural key.
type Registration struct {
	ID           int64
	Email        string
	Name         string // Optional; empty when not provided
	Organization string // Optional; empty when not provided
	RegisteredAt time.Time
}

// RegistrationRepository defines persistence operations for registrations.
type RegistrationRepository interface {
	// Create inserts the registration if no registration with the same email
	// exists. It returns ErrDuplicateEmail without mutating anything otherwise.
	// The insert is atomic. RegisteredAt must be set by the caller.
	Create(ctx context.Context, reg *Registration) error
	// List returns every registration, newest RegisteredAt first.
	List(ctx context.Context) ([]Registration, error)
}
