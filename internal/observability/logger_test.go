package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestDefaultLoggingConfig(t *testing.T) {
	cfg := DefaultLoggingConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.False(t, cfg.AddSource)
}

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with default config", func(t *testing.T) {
		cfg := DefaultLoggingConfig()
		logger := NewLogger(cfg)

		assert.NotEqual(t, zerolog.Logger{}, logger)
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		cfg := LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stdout",
		}
		logger := NewLogger(cfg)

		assert.NotEqual(t, zerolog.Logger{}, logger)
	})

	t.Run("creates logger with stderr output", func(t *testing.T) {
		cfg := LoggingConfig{
			Level:  "debug",
			Format: "json",
			Output: "stderr",
		}
		logger := NewLogger(cfg)

		assert.NotEqual(t, zerolog.Logger{}, logger)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"WARN", zerolog.WarnLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestLogger_ServiceField(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().
		Str("service", "observability-service").
		Logger().
		Hook(TraceHook{})

	logger.Info().Msg("hello")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "observability-service", record["service"])
	assert.Equal(t, "hello", record["message"])
}

func TestTraceHook_NullOutsideSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(TraceHook{})

	logger.Info().Msg("no span here")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	traceID, present := record["trace_id"]
	require.True(t, present, "trace_id field must be present")
	assert.Nil(t, traceID)

	spanID, present := record["span_id"]
	require.True(t, present, "span_id field must be present")
	assert.Nil(t, spanID)
}

func TestTraceHook_IDsInsideSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "traced-op")
	defer span.End()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(TraceHook{})
	logger.Info().Ctx(ctx).Msg("inside span")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	traceID, ok := record["trace_id"].(string)
	require.True(t, ok, "trace_id must be a string inside a span")
	assert.Len(t, traceID, 32)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)

	spanID, ok := record["span_id"].(string)
	require.True(t, ok, "span_id must be a string inside a span")
	assert.Len(t, spanID, 16)
	assert.Equal(t, span.SpanContext().SpanID().String(), spanID)
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(zerolog.New(&buf), "http-server")

	logger.Info().Msg("component test")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "http-server", record["component"])
}
