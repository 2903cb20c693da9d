package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/nikolay-ai/hackevent/internal/domain"
	"github.com/nikolay-ai/hackevent/internal/metrics"
)

const (
	maxEmailLength = 254
	maxFieldLength = 200
)

// RegistrationObserver is notified of every registration outcome.
type RegistrationObserver interface {
	ObserveRegistration(result string)
}

// RegistrationService validates sign-ups and stores them.
type RegistrationService struct {
	repo            domain.RegistrationRepository
	now             func() time.Time
	storeTimeout    time.Duration
	caseInsensitive bool
	observer        RegistrationObserver
}

// RegistrationOption configures a RegistrationService.
type RegistrationOption func(*RegistrationService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RegistrationOption {
	return func(s *RegistrationService) { s.now = now }
}

// WithStoreTimeout bounds every store call.
func WithStoreTimeout(d time.Duration) RegistrationOption {
	return func(s *RegistrationService) { s.storeTimeout = d }
}

// WithCaseInsensitiveEmail lowercases emails before validation and storage.
func WithCaseInsensitiveEmail(on bool) RegistrationOption {
	return func(s *RegistrationService) { s.caseInsensitive = on }
}

// WithObserver reports outcomes to o.
func WithObserver(o RegistrationObserver) RegistrationOption {
	return func(s *RegistrationService) { s.observer = o }
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(repo domain.RegistrationRepository, opts ...RegistrationOption) *RegistrationService {
	s := &RegistrationService{
		repo:         repo,
		now:          time.Now,
		storeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register validates the input and stores a new registration. It returns a
// *domain.FieldError for bad input, domain.ErrDuplicateEmail when the email
// is taken and domain.ErrStoreUnavailable for any storage failure.
func (s *RegistrationService) Register(ctx context.Context, email, name, organization string) (*domain.Registration, error) {
	email = strings.TrimSpace(email)
	if s.caseInsensitive {
		email = strings.ToLower(email)
	}
	name = strings.TrimSpace(name)
	organization = strings.TrimSpace(organization)

	if err := validateRegistration(email, name, organization); err != nil {
		s.observe(metrics.ResultInvalid)
		return nil, err
	}

	reg := &domain.Registration{
		Email:        email,
		Name:         name,
		Organization: organization,
		RegisteredAt: s.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.observe(metrics.ResultDuplicate)
			return nil, domain.ErrDuplicateEmail
		}
		s.observe(metrics.ResultError)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	s.observe(metrics.ResultCreated)
	slog.Info("registration created", "id", reg.ID)
	return reg, nil
}

// List returns every registration, newest first.
func (s *RegistrationService) List(ctx context.Context) ([]domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	regs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return regs, nil
}

func (s *RegistrationService) observe(result string) {
	if s.observer != nil {
		s.observer.ObserveRegistration(result)
	}
}

func validateRegistration(email, name, organization string) error {
	if email == "" {
		return &domain.FieldError{Field: "email", Message: "email is required"}
	}
	if len(email) > maxEmailLength {
		return &domain.FieldError{Field: "email", Message: "email is too long"}
	}
	// ParseAddress also accepts "Name <addr>"; only a bare address is valid.
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndexByte(email, '@'):], ".") {
		return &domain.FieldError{Field: "email", Message: "value is not a valid email address"}
	}
	if len(name) > maxFieldLength {
		return &domain.FieldError{Field: "name", Message: "name is too long"}
	}
	if len(organization) > maxFieldLength {
		return &domain.FieldError{Field: "organization", Message: "organization is too long"}
	}
	return nil
}
