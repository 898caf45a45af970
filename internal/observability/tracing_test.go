package observability

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), TracingSetup{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Noop provider: spans started from it are not recording.
	_, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.IsRecording())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupTracing_InstallsPropagator(t *testing.T) {
	_, err := SetupTracing(context.Background(), TracingSetup{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
}

func TestSetupTracing_Enabled(t *testing.T) {
	// The OTLP gRPC exporter connects lazily, so setup succeeds without a
	// reachable collector; failures surface through the error handler instead.
	shutdown, err := SetupTracing(context.Background(), TracingSetup{
		Enabled:        true,
		Endpoint:       "http://127.0.0.1:4317",
		SampleRatio:    1.0,
		ServiceName:    "observability-service",
		ServiceVersion: "0.1.0",
		Environment:    "test",
		PodName:        "test-pod",
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, span := otel.Tracer("test").Start(context.Background(), "recorded-op")
	assert.True(t, span.IsRecording())

	sc := trace.SpanContextFromContext(ctx)
	assert.True(t, sc.IsValid())
	span.End()

	// Shutdown flushes to an unreachable collector; bound the flush so export
	// retries cannot stall the test. The error, if any, must not panic.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = shutdown(shutdownCtx)

	// Restore a noop provider for other tests.
	_, err = SetupTracing(context.Background(), TracingSetup{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)
}
