// Package httpserver provides the HTTP API server for the observability service.
package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/helixir/observability-service/internal/compute"
	"github.com/helixir/observability-service/internal/health"
	"github.com/helixir/observability-service/internal/observability"
)

const tracerName = "github.com/helixir/observability-service/internal/server/http"

// Server is the HTTP API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	checker    *health.Checker
	pool       *compute.Pool
	metrics    *observability.Metrics
	tracer     trace.Tracer
	logger     zerolog.Logger
	cfg        Config
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// PodName is echoed by the root endpoint and the health snapshot.
	PodName string

	// MetricsEnabled mounts the metrics endpoint at MetricsPath.
	MetricsEnabled bool
	MetricsPath    string

	// HeavyEnabled mounts the CPU-intensive computation endpoint.
	HeavyEnabled bool

	// ComputationTimeout bounds a single heavy computation.
	ComputationTimeout time.Duration
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	checker *health.Checker,
	pool *compute.Pool,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		checker: checker,
		pool:    pool,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
		logger:  observability.WithComponent(logger, "http-server"),
		cfg:     cfg,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(s.metricsMiddleware)

	r.Method(http.MethodGet, "/health", s.traced("GET /health", s.healthHandler))

	r.Route("/observability", func(r chi.Router) {
		r.Method(http.MethodGet, "/root", s.traced("GET /observability/root", s.rootHandler))
		r.Method(http.MethodGet, "/light", s.traced("GET /observability/light", s.lightHandler))
		if s.cfg.HeavyEnabled {
			r.Method(http.MethodGet, "/heavy", s.traced("GET /observability/heavy", s.heavyHandler))
		}
	})

	// Pull-based exposition endpoint, mounted only when the feature flag is on.
	if s.cfg.MetricsEnabled {
		r.Method(http.MethodGet, s.cfg.MetricsPath, s.metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, errNotFound("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// traced wraps a handler so every request to it runs inside a root span.
// The span is closed by the wrapper regardless of handler outcome.
func (s *Server) traced(name string, h http.HandlerFunc) http.Handler {
	return otelhttp.NewHandler(h, name)
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
