package httpserver

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/helixir/observability-service/internal/compute"
)

// healthHandler assembles and returns a fresh health snapshot.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.checker.Check(r.Context())
	if !snap.Healthy() {
		// Unreachable today: the checker probes no dependencies. The mapping
		// exists so a real probe can fail without touching this handler.
		writeAPIError(w, errServiceUnavailable("health check failed"))
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// rootHandler returns a readiness banner with the pod identity.
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Info().Ctx(r.Context()).Msg("root accessed")
	writeJSON(w, http.StatusOK, simpleResponse{
		Message: "Observability Ready",
		Pod:     s.cfg.PodName,
	})
}

// lightHandler runs the lightweight summation inline on the request goroutine.
func (s *Server) lightHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "light-computation")
	defer span.End()

	start := time.Now()
	result := compute.LightSum()
	duration := time.Since(start)

	s.finishComputation(ctx, span, compute.TypeLight, result, duration)
	writeJSON(w, http.StatusOK, computationResponse{
		Result:          result,
		ComputationType: compute.TypeLight,
		DurationMS:      durationMillis(duration),
	})
}

// heavyHandler runs the CPU-intensive summation through the worker pool so it
// never blocks concurrent request handling.
func (s *Server) heavyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ComputationTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "heavy-computation")
	defer span.End()

	start := time.Now()
	result, err := s.pool.Run(ctx, compute.HeavySum)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		s.logger.Warn().Ctx(ctx).Err(err).Msg("heavy computation aborted")
		writeAPIError(w, errServiceUnavailable("computation capacity exhausted"))
		return
	}

	s.finishComputation(ctx, span, compute.TypeHeavy, result, duration)
	s.logger.Info().Ctx(ctx).
		Float64("duration_ms", durationMillis(duration)).
		Msg("heavy computation completed")

	writeJSON(w, http.StatusOK, computationResponse{
		Result:          result,
		ComputationType: compute.TypeHeavy,
		DurationMS:      durationMillis(duration),
	})
}

// finishComputation annotates the computation span and records its metrics.
func (s *Server) finishComputation(_ context.Context, span trace.Span, computationType string, result int64, duration time.Duration) {
	span.SetAttributes(
		attribute.String("computation.type", computationType),
		attribute.Int64("computation.result", result),
	)
	s.metrics.RecordComputation(computationType, duration.Seconds())
}

// durationMillis converts a duration to fractional milliseconds.
func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
