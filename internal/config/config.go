// Package config provides configuration management for the observability service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the observability service.
type Config struct {
	// App contains application identity settings.
	App AppConfig `mapstructure:"app"`
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
	// Tracing contains OpenTelemetry distributed tracing settings.
	Tracing TracingConfig `mapstructure:"tracing"`
	// Profiling contains continuous profiling settings.
	Profiling ProfilingConfig `mapstructure:"profiling"`
	// Computation contains demo computation endpoint settings.
	Computation ComputationConfig `mapstructure:"computation"`
}

// AppConfig holds application identity settings.
type AppConfig struct {
	// Name is the service name used in logs, traces, and profiles.
	Name string `mapstructure:"name"`
	// Version is the application version reported by the health endpoint.
	Version string `mapstructure:"version"`
	// Environment is the deployment environment tag (local, staging, production).
	Environment string `mapstructure:"environment"`
	// PodName is the Kubernetes pod identity, injected via the downward API.
	PodName string `mapstructure:"pod_name"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// Port is the HTTP server port (default: 8080).
	Port int `mapstructure:"port"`
	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// IdleTimeout is the maximum duration to keep idle connections open.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and the /metrics endpoint.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for the metrics endpoint.
	Path string `mapstructure:"path"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled enables distributed tracing.
	Enabled bool `mapstructure:"enabled"`
	// Endpoint is the OTLP collector endpoint URL. An http scheme disables TLS.
	Endpoint string `mapstructure:"endpoint"`
	// SampleRatio is the trace sampling ratio (0.0 to 1.0).
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// ProfilingConfig holds continuous profiling configuration.
type ProfilingConfig struct {
	// Enabled enables continuous profiling.
	Enabled bool `mapstructure:"enabled"`
	// ServerAddress is the Pyroscope server address.
	ServerAddress string `mapstructure:"server_address"`
}

// ComputationConfig holds settings for the demo computation endpoints.
type ComputationConfig struct {
	// HeavyEnabled enables the CPU-intensive computation endpoint.
	HeavyEnabled bool `mapstructure:"heavy_enabled"`
	// Timeout is the maximum duration for a single computation.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Address returns the HTTP server listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Identifier returns the profiler application identifier "<name>.<environment>".
func (c *AppConfig) Identifier() string {
	return fmt.Sprintf("%s.%s", c.Name, c.Environment)
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("OBSVC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The pod identity is injected by the Kubernetes downward API as POD_NAME,
	// so bind it in addition to the prefixed form.
	if err := v.BindEnv("app.pod_name", "OBSVC_APP_POD_NAME", "POD_NAME"); err != nil {
		return nil, fmt.Errorf("bind pod name env: %w", err)
	}

	// Read config file if present
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/observability-service")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "observability-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.environment", "local")
	v.SetDefault("app.pod_name", "unknown-pod")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "2m")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Tracing defaults
	v.SetDefault("tracing.enabled", true)
	v.SetDefault("tracing.endpoint", "http://tempo.monitoring.svc.cluster.local:4317")
	v.SetDefault("tracing.sample_ratio", 1.0)

	// Profiling defaults
	v.SetDefault("profiling.enabled", true)
	v.SetDefault("profiling.server_address", "http://pyroscope.monitoring.svc.cluster.local:4040")

	// Computation defaults
	v.SetDefault("computation.heavy_enabled", true)
	v.SetDefault("computation.timeout", "30s")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing endpoint is required when tracing is enabled")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample ratio must be between 0 and 1")
	}

	if c.Profiling.Enabled && c.Profiling.ServerAddress == "" {
		return fmt.Errorf("profiling server address is required when profiling is enabled")
	}

	if c.Computation.Timeout <= 0 {
		return fmt.Errorf("computation timeout must be positive")
	}

	return nil
}
