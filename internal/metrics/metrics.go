package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registration outcomes recorded by ObserveRegistration.
const (
	ResultCreated   = "created"
	ResultDuplicate = "duplicate"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	RegistrationsTotal *prometheus.CounterVec
	RateLimitedTotal   prometheus.Counter
	AdminLoginsTotal   *prometheus.CounterVec
}

// New creates the metrics on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RegistrationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hackevent_registrations_total",
			Help: "Registration attempts by result",
		}, []string{"result"}),
		RateLimitedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hackevent_rate_limited_requests_total",
			Help: "Requests rejected by the registration rate limiter",
		}),
		AdminLoginsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hackevent_admin_logins_total",
			Help: "Admin login attempts by result",
		}, []string{"result"}),
	}
}

// ObserveRegistration counts one registration attempt.
func (m *Metrics) ObserveRegistration(result string) {
	m.RegistrationsTotal.WithLabelValues(result).Inc()
}

// IncrementRateLimited counts a request rejected by the rate limiter.
func (m *Metrics) IncrementRateLimited() {
	m.RateLimitedTotal.Inc()
}

// ObserveAdminLogin counts one admin login attempt.
func (m *Metrics) ObserveAdminLogin(ok bool) {
	m.AdminLoginsTotal.WithLabelValues(outcome(ok)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
