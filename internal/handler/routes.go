package handler

import (
	"log/slog"
	"net/http"

	"github.com/nikolay-ai/hackevent/internal/metrics"
	"github.com/nikolay-ai/hackevent/internal/service"
)

// Deps are the services the routes are wired to.
type Deps struct {
	Registrations  *service.RegistrationService
	Store          Pinger
	Admin          *service.AdminService
	Limiter        *service.TokenBucket
	Metrics        *metrics.Metrics
	InvitationPath string
	AssetsDir      string
	CookieSecure   bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	home := NewHomeHandler(d.InvitationPath)
	health := NewHealthHandler(d.Store)
	regs := NewRegistrationHandler(d.Registrations)

	var (
		onLimited func()
		loginObs  LoginObserver
	)
	if d.Metrics != nil {
		onLimited = d.Metrics.IncrementRateLimited
		loginObs = d.Metrics
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}
	admin := NewAdminHandler(d.Admin, d.CookieSecure, loginObs)

	limited := func(h http.HandlerFunc) http.Handler {
		if d.Limiter == nil {
			return h
		}
		return RateLimit(d.Limiter, onLimited, h)
	}

	mux.HandleFunc("GET /{$}", home.HandleHome)
	if d.AssetsDir != "" {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(d.AssetsDir))))
	}

	mux.HandleFunc("GET /api/health", health.HandleHealth)
	mux.HandleFunc("GET /healthz", health.HandleHealth)

	mux.Handle("POST /api/register", limited(regs.HandleRegister))
	mux.Handle("POST /register", limited(regs.HandleRegisterForm))

	if !d.Admin.Enabled() {
		slog.Warn("ADMIN_PASSWORD_HASH not set; registration listing is unauthenticated")
	}
	mux.Handle("GET /api/registrations", RequireAdmin(d.Admin, http.HandlerFunc(regs.HandleList)))
	mux.Handle("POST /api/admin/login", limited(admin.HandleLogin))
}

// NewServer wraps the mux with the middleware every request passes through.
func NewServer(mux *http.ServeMux) http.Handler {
	return SecurityHeaders(RequestID(mux))
}
