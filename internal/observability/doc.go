// Package observability provides logging, tracing, profiling, and metrics
// support for the observability service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog, enriched with trace context
//   - OpenTelemetry tracer provider setup with OTLP gRPC export
//   - Continuous profiling via the Pyroscope client
//   - Prometheus metrics for the HTTP surface and demo computations
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:       "info",
//	    Format:      "json",
//	    Output:      "stdout",
//	    ServiceName: "observability-service",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Ctx(ctx).Msg("request handled")
//
// Events created with .Ctx(ctx) inside a traced request carry trace_id and
// span_id; events outside any span carry explicit nulls for both fields.
//
// # Tracing
//
// Install the process-wide tracer provider at startup:
//
//	shutdown, err := observability.SetupTracing(ctx, observability.TracingSetup{
//	    Enabled:     true,
//	    Endpoint:    "http://tempo.monitoring.svc.cluster.local:4317",
//	    SampleRatio: 1.0,
//	    ServiceName: "observability-service",
//	}, logger)
//
// # Profiling
//
// Start the background sampling profiler:
//
//	stop := observability.SetupProfiling(observability.ProfilingSetup{
//	    Enabled:         true,
//	    ApplicationName: "observability-service.local",
//	    ServerAddress:   "http://pyroscope.monitoring.svc.cluster.local:4040",
//	    PodName:         pod,
//	}, logger)
//	defer stop()
//
// # Metrics
//
// Initialize metrics and record request outcomes:
//
//	metrics := observability.NewMetrics("observability")
//	metrics.RecordRequest("/health", "GET", "2xx", 0.002)
//
// # Failure Model
//
// All observability subsystems degrade silently: an unreachable collector,
// profiler, or a log formatting problem never fails a user request.
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
