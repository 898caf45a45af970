package observability

import (
	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/rs/zerolog"
)

// ProfilingSetup describes the continuous profiler configuration.
type ProfilingSetup struct {
	// Enabled controls whether the profiler is started.
	Enabled bool

	// ApplicationName is the profiler application identifier, "<app>.<environment>".
	ApplicationName string

	// ServerAddress is the Pyroscope server address.
	ServerAddress string

	// PodName is attached to every uploaded profile as the "pod" tag.
	PodName string
}

// SetupProfiling starts the background sampling profiler. Sampling and upload
// run on the client's own timers, independent of request handling. A start
// failure is logged and returns a nil stop function; profiling is never fatal.
func SetupProfiling(cfg ProfilingSetup, logger zerolog.Logger) func() {
	if !cfg.Enabled {
		logger.Info().Msg("profiling disabled")
		return func() {}
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Tags:            map[string]string{"pod": cfg.PodName},
		Logger:          profilerLogger{logger: WithComponent(logger, "profiler")},
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to start profiler")
		return func() {}
	}

	logger.Info().
		Str("application", cfg.ApplicationName).
		Str("server_address", cfg.ServerAddress).
		Msg("profiling enabled")

	return func() {
		if err := profiler.Stop(); err != nil {
			logger.Error().Err(err).Msg("failed to stop profiler")
		}
	}
}

// profilerLogger adapts zerolog to the pyroscope Logger interface.
type profilerLogger struct {
	logger zerolog.Logger
}

func (l profilerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

func (l profilerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l profilerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}
