// Package main provides the entry point for the observability service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/helixir/observability-service/internal/compute"
	"github.com/helixir/observability-service/internal/config"
	"github.com/helixir/observability-service/internal/health"
	"github.com/helixir/observability-service/internal/observability"
	httpserver "github.com/helixir/observability-service/internal/server/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env first so local development keys reach the config layer.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging before anything else so startup is observable.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      cfg.Logging.Output,
		AddSource:   cfg.Logging.AddSource,
		TimeFormat:  cfg.Logging.TimeFormat,
		ServiceName: cfg.App.Name,
	})
	logger.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Str("pod", cfg.App.PodName).
		Msgf("starting %s", cfg.App.Name)

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Install the tracer provider.
	shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingSetup{
		Enabled:        cfg.Tracing.Enabled,
		Endpoint:       cfg.Tracing.Endpoint,
		SampleRatio:    cfg.Tracing.SampleRatio,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		PodName:        cfg.App.PodName,
	}, logger)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to shut down tracer provider")
		}
	}()

	// Start the continuous profiler. Never fatal.
	stopProfiling := observability.SetupProfiling(observability.ProfilingSetup{
		Enabled:         cfg.Profiling.Enabled,
		ApplicationName: cfg.App.Identifier(),
		ServerAddress:   cfg.Profiling.ServerAddress,
		PodName:         cfg.App.PodName,
	}, logger)
	defer stopProfiling()

	metrics := observability.NewMetrics("observability")
	checker := health.NewChecker(cfg.App.PodName, cfg.App.Version)
	pool := compute.NewPool(0)

	server := httpserver.NewServer(httpserver.Config{
		Address:            cfg.Server.Address(),
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		IdleTimeout:        cfg.Server.IdleTimeout,
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		PodName:            cfg.App.PodName,
		MetricsEnabled:     cfg.Metrics.Enabled,
		MetricsPath:        cfg.Metrics.Path,
		HeavyEnabled:       cfg.Computation.HeavyEnabled,
		ComputationTimeout: cfg.Computation.Timeout,
	}, checker, pool, metrics, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	logger.Info().Msg("shutdown complete")
	return nil
}
