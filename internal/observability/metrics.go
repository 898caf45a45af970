package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the observability service.
// Each instance owns its own registry so construction is safe in tests; the
// registry is exposed through Handler for pull-based scraping.
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequestsTotal counts completed HTTP requests, labeled by route
	// template, method, and status class (2xx, 4xx, ...).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes request latency in seconds, labeled by
	// route template and method.
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInFlight tracks the number of requests currently being served.
	HTTPRequestsInFlight prometheus.Gauge

	// ComputationsTotal counts demo computations, labeled by type (cpu-intensive, async).
	ComputationsTotal *prometheus.CounterVec

	// ComputationDuration observes computation duration in seconds, labeled by type.
	ComputationDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized and
// registered, along with the standard Go runtime and process collectors.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		}, []string{"route", "method", "status_class"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route", "method"}),
		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),

		ComputationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Total number of demo computations by type",
		}, []string{"type"}),
		ComputationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "computation_duration_seconds",
			Help:      "Duration of demo computations in seconds by type",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"type"}),
	}
}

// Handler returns the Prometheus text exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest records a completed HTTP request.
func (m *Metrics) RecordRequest(route, method, statusClass string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, statusClass).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(durationSeconds)
}

// RecordComputation records a completed demo computation.
func (m *Metrics) RecordComputation(computationType string, durationSeconds float64) {
	m.ComputationsTotal.WithLabelValues(computationType).Inc()
	m.ComputationDuration.WithLabelValues(computationType).Observe(durationSeconds)
}
