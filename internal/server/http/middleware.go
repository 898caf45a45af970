package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/helixir/observability-service/internal/observability"
)

// correlationIDMiddleware ensures every request has a correlation ID.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get("X-Correlation-ID")
		if correlationID == "" {
			correlationID = middleware.GetReqID(r.Context())
		}
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		w.Header().Set("X-Correlation-ID", correlationID)
		ctx := observability.WithRequestID(r.Context(), correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// metricsMiddleware records a counter and latency observation for every
// completed request, labeled by chi route template, method, and status class.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		s.metrics.HTTPRequestsInFlight.Inc()
		defer func() {
			s.metrics.HTTPRequestsInFlight.Dec()

			// The route pattern is populated during dispatch, so it must be
			// read after the handler ran.
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			s.metrics.RecordRequest(route, r.Method, statusClass(ww.Status()), time.Since(start).Seconds())
		}()

		next.ServeHTTP(ww, r)
	})
}

// statusClass collapses an HTTP status code into its class label (2xx, 4xx, ...).
func statusClass(status int) string {
	if status == 0 {
		// Handler never called WriteHeader; net/http defaults to 200.
		status = http.StatusOK
	}
	return fmt.Sprintf("%dxx", status/100)
}
