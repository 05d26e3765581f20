package config

import "time"

// Config is the root configuration structure for polc.
// It contains the parser limits and the settings of every ambient
// subsystem: logging, metrics, tracing, watch mode and parse history.
type Config struct {
	// Parser contains limits applied to every parse session.
	Parser ParserConfig `yaml:"parser"`

	// Logging contains log level and output format.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry span export settings.
	Tracing TracingConfig `yaml:"tracing"`

	// Watch contains settings for `polc watch`.
	Watch WatchConfig `yaml:"watch"`

	// History contains settings for the parse history store.
	History HistoryConfig `yaml:"history"`
}

// ParserConfig contains limits applied to every parse session.
type ParserConfig struct {
	// BufferSize is the read buffer size of each scanner buffer, in bytes.
	// Default: 16384
	BufferSize int `yaml:"buffer_size"`

	// MaxMessageLength bounds each rendered diagnostic, in bytes.
	// Default: 256
	MaxMessageLength int `yaml:"max_message_length"`

	// MaxGlobMatches bounds the expansion of one include pattern.
	// -1 means unlimited.
	// Default: -1
	MaxGlobMatches int `yaml:"max_glob_matches"`

	// MarkDirectories appends a separator to directory glob matches, so an
	// include pattern that matches a directory reports it as not a regular
	// file.
	// Default: true
	MarkDirectories bool `yaml:"mark_directories"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file:line of the logging call.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "polc"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "parser"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where `polc watch` serves the metrics endpoint.
	// Format: "host:port".
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// DurationBuckets defines histogram buckets for session duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
// Each parse session becomes one span.
type TracingConfig struct {
	// Enabled exports spans over OTLP/gRPC.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP collector address.
	// Format: "host:port".
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// SampleRatio is the fraction of sessions traced, between 0 and 1.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "polc"
	ServiceName string `yaml:"service_name"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// Debounce is how long file events are coalesced before a re-parse.
	// Default: 250ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression (standard 5-field syntax)
	// that triggers a re-parse even without file events.
	// Default: "" (disabled)
	Schedule string `yaml:"schedule"`
}

// HistoryConfig contains configuration for the parse history store.
type HistoryConfig struct {
	// Enabled records every parse run by `polc check` and `polc watch`.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file path.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long a writer waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaxOpenConns limits open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// Retention is how long records are kept before pruning.
	// Default: 720h (30 days)
	Retention time.Duration `yaml:"retention"`

	// PruneSchedule is the cron expression for pruning while watching.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}
