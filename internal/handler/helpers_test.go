package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nikolay-ai/hackevent/internal/handler"
	"github.com/nikolay-ai/hackevent/internal/metrics"
	"github.com/nikolay-ai/hackevent/internal/repository/sqlite"
	"github.com/nikolay-ai/hackevent/internal/service"
)

const (
	testJWTSecret     = "test-secret-for-handler-tests-0123456789"
	testAdminPassword = "let-me-in-please"
)

type testOptions struct {
	adminEnabled bool
	rate, burst  float64
	invitation   string
}

func newTestDeps(t *testing.T, opts testOptions) handler.Deps {
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

	m := metrics.New()

	hash := ""
	if opts.adminEnabled {
		// Use cost 4 for fast tests.
		hash, err = service.HashPassword(testAdminPassword, 4)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
	}

	if opts.burst == 0 {
		opts.rate, opts.burst = 100, 100
	}
	limiter := service.NewTokenBucket(opts.rate, opts.burst)
	t.Cleanup(limiter.Stop)

	invitation := opts.invitation
	if invitation == "" {
		invitation = filepath.Join(t.TempDir(), "missing.html")
	}

	return handler.Deps{
		Registrations:  service.NewRegistrationService(db.Registrations(), service.WithObserver(m), service.WithStoreTimeout(time.Second)),
		Store:          db,
		Admin:          service.NewAdminService(hash, testJWTSecret),
		Limiter:        limiter,
		Metrics:        m,
		InvitationPath: invitation,
		AssetsDir:      t.TempDir(),
		CookieSecure:   false,
	}
}

func newTestServer(t *testing.T, deps handler.Deps) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, deps)
	srv := httptest.NewServer(handler.NewServer(mux))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}
