package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// TracingSetup describes the tracer provider configuration.
type TracingSetup struct {
	// Enabled controls whether a real tracer provider is installed.
	// When false, a noop provider is set and shutdown is a no-op.
	Enabled bool

	// Endpoint is the OTLP gRPC collector endpoint URL.
	// An http scheme disables transport security.
	Endpoint string

	// SampleRatio is the trace sampling ratio applied via ParentBased(TraceIDRatioBased).
	SampleRatio float64

	// ServiceName, ServiceVersion, Environment, and PodName populate the
	// resource descriptor attached to every exported span.
	ServiceName    string
	ServiceVersion string
	Environment    string
	PodName        string
}

// SetupTracing installs the process-wide OpenTelemetry tracer provider.
//
// Finished spans are buffered by the batch span processor and flushed to the
// collector on batch-full or timer tick, whichever comes first; when the
// processor's bounded queue overflows, new spans are dropped rather than
// blocking request handling. Export failures are logged through the OTel error
// handler and never propagate to callers.
//
// The returned shutdown function flushes remaining spans with a bounded
// timeout and must be called on service stop.
func SetupTracing(ctx context.Context, cfg TracingSetup, logger zerolog.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		otel.SetTracerProvider(nooptrace.NewTracerProvider())
		setPropagator()
		logger.Info().Msg("tracing disabled, noop tracer provider installed")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
			semconv.K8SPodName(cfg.PodName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build trace resource: %w", err)
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	setPropagator()

	// An unreachable collector must never fail a user request, so export
	// errors are logged and swallowed.
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		logger.Warn().Err(err).Msg("span export failed")
	}))

	logger.Info().Str("endpoint", cfg.Endpoint).Msg("tracing enabled")

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

func setPropagator() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
