package observability

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics("observability")

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.HTTPRequestsInFlight)
	assert.NotNil(t, m.ComputationsTotal)
	assert.NotNil(t, m.ComputationDuration)
}

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	// Each instance owns its registry, so repeated construction must not panic
	// with duplicate registration.
	assert.NotPanics(t, func() {
		NewMetrics("observability")
		NewMetrics("observability")
	})
}

func TestRecordRequest(t *testing.T) {
	m := NewMetrics("observability")

	m.RecordRequest("/health", "GET", "2xx", 0.002)
	m.RecordRequest("/health", "GET", "2xx", 0.004)
	m.RecordRequest("/observability/heavy", "GET", "5xx", 1.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/health", "GET", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/observability/heavy", "GET", "5xx")))
}

func TestRecordComputation(t *testing.T) {
	m := NewMetrics("observability")

	m.RecordComputation("cpu-intensive", 0.5)
	m.RecordComputation("async", 0.001)
	m.RecordComputation("async", 0.002)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ComputationsTotal.WithLabelValues("cpu-intensive")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ComputationsTotal.WithLabelValues("async")))
}

func TestInFlightGauge(t *testing.T) {
	m := NewMetrics("observability")

	m.HTTPRequestsInFlight.Inc()
	m.HTTPRequestsInFlight.Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsInFlight))

	m.HTTPRequestsInFlight.Dec()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
}

func TestHandler_Exposition(t *testing.T) {
	m := NewMetrics("observability")
	m.RecordRequest("/observability/light", "GET", "2xx", 0.001)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, req)

	require.Equal(t, 200, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "observability_http_requests_total"),
		"exposition should contain the request counter, got:\n%s", body)
	assert.Contains(t, body, `route="/observability/light"`)
	// Runtime collectors ride along on the same registry.
	assert.Contains(t, body, "go_goroutines")
}
