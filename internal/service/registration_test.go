package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikolay-ai/hackevent/internal/domain"
	"github.com/nikolay-ai/hackevent/internal/metrics"
	"github.com/nikolay-ai/hackevent/internal/repository/sqlite"
	"github.com/nikolay-ai/hackevent/internal/service"
)

// steppingClock returns t0, t0+1m, t0+2m, ... on successive calls.
func steppingClock(t0 time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		now := t0.Add(time.Duration(n) * time.Minute)
		n++
		return now
	}
}

func newTestRegistrationService(t *testing.T, opts ...service.RegistrationOption) *service.RegistrationService {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return service.NewRegistrationService(db.Registrations(), opts...)
}

// stubRepo counts calls and returns canned errors.
type stubRepo struct {
	createErr error
	listErr   error
	creates   int
	lists     int
}

func (r *stubRepo) Create(ctx context.Context, reg *domain.Registration) error {
	r.creates++
	return r.createErr
}

func (r *stubRepo) List(ctx context.Context) ([]domain.Registration, error) {
	r.lists++
	return nil, r.listErr
}

type countingObserver map[string]int

func (c countingObserver) ObserveRegistration(result string) { c[result]++ }

func TestRegistrationService_Register_Success(t *testing.T) {
	t0 := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	svc := newTestRegistrationService(t, service.WithClock(func() time.Time { return t0 }))
	ctx := context.Background()

	reg, err := svc.Register(ctx, "alice@example.com", "Alice", "Wonderland Labs")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.ID == 0 {
		t.Fatal("expected ID to be set")
	}
	if !reg.RegisteredAt.Equal(t0) {
		t.Fatalf("RegisteredAt = %v, want %v", reg.RegisteredAt, t0)
	}
}

func TestRegistrationService_Register_Duplicate(t *testing.T) {
	obs := countingObserver{}
	svc := newTestRegistrationService(t, service.WithObserver(obs))
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "", ""); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, "alice@example.com", "Alice Again", "")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	regs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("expected exactly 1 registration, got %d", len(regs))
	}
	if obs[metrics.ResultCreated] != 1 || obs[metrics.ResultDuplicate] != 1 {
		t.Fatalf("unexpected observations: %v", obs)
	}
}

func TestRegistrationService_List_NewestFirst(t *testing.T) {
	t0 := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	svc := newTestRegistrationService(t, service.WithClock(steppingClock(t0)))
	ctx := context.Background()

	for _, email := range []string{"t1@example.com", "t2@example.com", "t3@example.com"} {
		if _, err := svc.Register(ctx, email, "", ""); err != nil {
			t.Fatalf("Register %s: %v", email, err)
		}
	}

	regs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"t3@example.com", "t2@example.com", "t1@example.com"}
	if len(regs) != len(want) {
		t.Fatalf("expected %d registrations, got %d", len(want), len(regs))
	}
	for i := range want {
		if regs[i].Email != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, regs[i].Email, want[i])
		}
	}
}

func TestRegistrationService_Register_InvalidInputSkipsStore(t *testing.T) {
	tests := []struct {
		name  string
		email string
		org   string
		field string
	}{
		{"empty", "", "", "email"},
		{"no at", "not-an-email", "", "email"},
		{"display name form", "Alice <alice@example.com>", "", "email"},
		{"no domain dot", "alice@localhost", "", "email"},
		{"spaces", "alice @example.com", "", "email"},
		{"long organization", "ok@example.com", string(make([]byte, 201)), "organization"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			svc := service.NewRegistrationService(repo)

			_, err := svc.Register(context.Background(), tc.email, "", tc.org)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var fe *domain.FieldError
			if !errors.As(err, &fe) || fe.Field != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, err)
			}
			if repo.creates != 0 {
				t.Fatal("store must not be touched for invalid input")
			}
		})
	}
}

func TestRegistrationService_StoreFailureIsUnavailable(t *testing.T) {
	obs := countingObserver{}
	repo := &stubRepo{
		createErr: errors.New("disk I/O error: /var/lib/secret.db"),
		listErr:   errors.New("connection refused"),
	}
	svc := service.NewRegistrationService(repo, service.WithObserver(obs))
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@example.com", "", "")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := svc.List(ctx); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from List, got %v", err)
	}
	if obs[metrics.ResultError] != 1 {
		t.Fatalf("unexpected observations: %v", obs)
	}
}

func TestRegistrationService_CaseSensitivity(t *testing.T) {
	ctx := context.Background()

	exact := newTestRegistrationService(t)
	if _, err := exact.Register(ctx, "Alice@Example.com", "", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := exact.Register(ctx, "alice@example.com", "", ""); err != nil {
		t.Fatalf("exact matching should treat case variants as distinct: %v", err)
	}

	folded := newTestRegistrationService(t, service.WithCaseInsensitiveEmail(true))
	reg, err := folded.Register(ctx, "Alice@Example.com", "", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", reg.Email)
	}
	if _, err := folded.Register(ctx, "ALICE@example.com", "", ""); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail for case variant, got %v", err)
	}
}

func TestRegistrationService_TrimsWhitespace(t *testing.T) {
	svc := newTestRegistrationService(t)

	reg, err := svc.Register(context.Background(), "  carol@example.com ", " Carol ", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Email != "carol@example.com" || reg.Name != "Carol" {
		t.Fatalf("expected trimmed fields, got %+v", reg)
	}
}

// blockingRepo waits for the context to expire.
type blockingRepo struct{}

func (blockingRepo) Create(ctx context.Context, reg *domain.Registration) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingRepo) List(ctx context.Context) ([]domain.Registration, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRegistrationService_StoreTimeout(t *testing.T) {
	svc := service.NewRegistrationService(blockingRepo{}, service.WithStoreTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := svc.Register(context.Background(), "slow@example.com", "", "")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("store timeout was not applied")
	}
}
