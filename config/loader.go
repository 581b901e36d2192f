// Package config provides configuration loading for routeflow: defaults,
// YAML file overrides, and environment-variable overrides, in that
// priority order.
//
// Usage:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("config.yaml").
//	    WithEnvPrefix("ROUTEFLOW").
//	    Load()
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the complete routeflow configuration.
type Config struct {
	// Engine configures the execution engine.
	Engine EngineConfig `yaml:"engine"`
	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
	// Metrics configures Prometheus collection.
	Metrics MetricsConfig `yaml:"metrics"`
	// Telemetry configures OpenTelemetry export.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EngineConfig configures the execution engine.
type EngineConfig struct {
	// EventBufferSize is the buffer size of streamed event channels.
	EventBufferSize int `yaml:"event_buffer_size"`
	// MaxParallelWorkers bounds concurrent parallel units; 0 = unbounded.
	MaxParallelWorkers int `yaml:"max_parallel_workers"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level"`
	// Format: json, console
	Format string `yaml:"format"`
	// OutputPaths are zap output targets.
	OutputPaths []string `yaml:"output_paths"`
}

// MetricsConfig configures Prometheus collection.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	ServiceName  string  `yaml:"service_name"`
	SampleRate   float64 `yaml:"sample_rate"`
}

// Loader loads configuration with the priority order
// defaults → YAML file → environment variables.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a configuration loader.
func NewLoader() *Loader {
	return &Loader{envPrefix: "ROUTEFLOW"}
}

// WithConfigPath sets the YAML file path. An empty path skips file loading.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load resolves the configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, err
		}
	}
	l.loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", l.configPath, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", l.configPath, err)
	}
	return nil
}

func (l *Loader) loadFromEnv(cfg *Config) {
	l.envString("LOG_LEVEL", &cfg.Log.Level)
	l.envString("LOG_FORMAT", &cfg.Log.Format)
	l.envInt("ENGINE_EVENT_BUFFER_SIZE", &cfg.Engine.EventBufferSize)
	l.envInt("ENGINE_MAX_PARALLEL_WORKERS", &cfg.Engine.MaxParallelWorkers)
	l.envBool("METRICS_ENABLED", &cfg.Metrics.Enabled)
	l.envString("METRICS_NAMESPACE", &cfg.Metrics.Namespace)
	l.envBool("TELEMETRY_ENABLED", &cfg.Telemetry.Enabled)
	l.envString("TELEMETRY_OTLP_ENDPOINT", &cfg.Telemetry.OTLPEndpoint)
	l.envString("TELEMETRY_SERVICE_NAME", &cfg.Telemetry.ServiceName)
}

func (l *Loader) envString(key string, dst *string) {
	if v, ok := os.LookupEnv(l.envPrefix + "_" + key); ok {
		*dst = v
	}
}

func (l *Loader) envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(l.envPrefix + "_" + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (l *Loader) envBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(l.envPrefix + "_" + key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	if c.Engine.EventBufferSize <= 0 {
		return fmt.Errorf("engine event_buffer_size must be positive, got %d", c.Engine.EventBufferSize)
	}
	if c.Engine.MaxParallelWorkers < 0 {
		return fmt.Errorf("engine max_parallel_workers must not be negative, got %d", c.Engine.MaxParallelWorkers)
	}
	return nil
}

// MustLoad loads the configuration from path and panics on failure.
func MustLoad(path string) *Config {
	cfg, err := NewLoader().WithConfigPath(path).Load()
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}
	return cfg
}
