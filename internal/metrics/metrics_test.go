package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolay-ai/hackevent/internal/metrics"
)

func TestObserveRegistration(t *testing.T) {
	m := metrics.New()

	m.ObserveRegistration(metrics.ResultCreated)
	m.ObserveRegistration(metrics.ResultCreated)
	m.ObserveRegistration(metrics.ResultDuplicate)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues(metrics.ResultCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues(metrics.ResultDuplicate)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid)))
}

func TestObserveLoginAndRateLimit(t *testing.T) {
	m := metrics.New()

	m.ObserveAdminLogin(true)
	m.ObserveAdminLogin(false)
	m.IncrementRateLimited()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdminLoginsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdminLoginsTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitedTotal))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := metrics.New()
	b := metrics.New()

	a.IncrementRateLimited()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RateLimitedTotal))
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.ObserveRegistration(metrics.ResultCreated)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `hackevent_registrations_total{result="created"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
	assert.NotContains(t, string(body), "hackevent_invitation_build")
}
