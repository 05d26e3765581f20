package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read by Load when no path is given.
const DefaultConfigPath = "polc.yaml"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention POLC_SECTION_FIELD (e.g., POLC_PARSER_MAX_GLOB_MATCHES).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

// Load is what the CLI calls. An explicit path must exist. With an empty
// path DefaultConfigPath is read if present; otherwise the configuration
// is built from defaults and the environment alone.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadConfigWithEnvOverrides(path)
	}

	cfg, err := LoadConfigWithEnvOverrides(DefaultConfigPath)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return finish(NewDefaultConfig())
}

func finish(cfg *Config) (*Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format POLC_SECTION_FIELD. A value that does
// not parse is reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError

	envInt := func(name string, dst *int) {
		if val := os.Getenv(name); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("not an integer: %q", val)})
				return
			}
			*dst = i
		}
	}
	envBool := func(name string, dst *bool) {
		if val := os.Getenv(name); val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("not a boolean: %q", val)})
				return
			}
			*dst = b
		}
	}
	envDuration := func(name string, dst *time.Duration) {
		if val := os.Getenv(name); val != "" {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("not a duration: %q", val)})
				return
			}
			*dst = d
		}
	}
	envFloat := func(name string, dst *float64) {
		if val := os.Getenv(name); val != "" {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("not a number: %q", val)})
				return
			}
			*dst = f
		}
	}
	envString := func(name string, dst *string) {
		if val := os.Getenv(name); val != "" {
			*dst = val
		}
	}

	// Parser overrides
	envInt("POLC_PARSER_BUFFER_SIZE", &cfg.Parser.BufferSize)
	envInt("POLC_PARSER_MAX_MESSAGE_LENGTH", &cfg.Parser.MaxMessageLength)
	envInt("POLC_PARSER_MAX_GLOB_MATCHES", &cfg.Parser.MaxGlobMatches)
	envBool("POLC_PARSER_MARK_DIRECTORIES", &cfg.Parser.MarkDirectories)

	// Logging overrides
	envString("POLC_LOGGING_LEVEL", &cfg.Logging.Level)
	envString("POLC_LOGGING_FORMAT", &cfg.Logging.Format)
	envBool("POLC_LOGGING_ADD_SOURCE", &cfg.Logging.AddSource)

	// Metrics overrides
	envBool("POLC_METRICS_ENABLED", &cfg.Metrics.Enabled)
	envString("POLC_METRICS_NAMESPACE", &cfg.Metrics.Namespace)
	envString("POLC_METRICS_SUBSYSTEM", &cfg.Metrics.Subsystem)
	envString("POLC_METRICS_LISTEN_ADDRESS", &cfg.Metrics.ListenAddress)
	envString("POLC_METRICS_PATH", &cfg.Metrics.Path)

	// Tracing overrides
	envBool("POLC_TRACING_ENABLED", &cfg.Tracing.Enabled)
	envString("POLC_TRACING_ENDPOINT", &cfg.Tracing.Endpoint)
	envBool("POLC_TRACING_INSECURE", &cfg.Tracing.Insecure)
	envDuration("POLC_TRACING_TIMEOUT", &cfg.Tracing.Timeout)
	envFloat("POLC_TRACING_SAMPLE_RATIO", &cfg.Tracing.SampleRatio)
	envString("POLC_TRACING_SERVICE_NAME", &cfg.Tracing.ServiceName)

	// Watch overrides
	envDuration("POLC_WATCH_DEBOUNCE", &cfg.Watch.Debounce)
	envString("POLC_WATCH_SCHEDULE", &cfg.Watch.Schedule)

	// History overrides
	envBool("POLC_HISTORY_ENABLED", &cfg.History.Enabled)
	envString("POLC_HISTORY_DRIVER", &cfg.History.Driver)
	envString("POLC_HISTORY_PATH", &cfg.History.Path)
	envDuration("POLC_HISTORY_BUSY_TIMEOUT", &cfg.History.BusyTimeout)
	envInt("POLC_HISTORY_MAX_OPEN_CONNS", &cfg.History.MaxOpenConns)
	envDuration("POLC_HISTORY_RETENTION", &cfg.History.Retention)
	envString("POLC_HISTORY_PRUNE_SCHEDULE", &cfg.History.PruneSchedule)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
