package config

import "time"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultParserBufferSize       = 16384
	DefaultParserMaxMessageLength = 256
	DefaultParserMaxGlobMatches   = -1
	DefaultParserMarkDirectories  = true

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"

	// Metrics defaults
	DefaultMetricsEnabled       = false
	DefaultMetricsNamespace     = "polc"
	DefaultMetricsSubsystem     = "parser"
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"

	// Tracing defaults
	DefaultTracingEnabled     = false
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultTracingSampleRatio = 1.0
	DefaultTracingService     = "polc"

	// Watch defaults
	DefaultWatchDebounce = 250 * time.Millisecond

	// History defaults
	DefaultHistoryEnabled       = false
	DefaultHistoryDriver        = "sqlite"
	DefaultHistoryPath          = "data/history.db"
	DefaultHistoryBusyTimeout   = 5 * time.Second
	DefaultHistoryMaxOpenConns  = 4
	DefaultHistoryRetention     = 30 * 24 * time.Hour
	DefaultHistoryPruneSchedule = "0 3 * * *"
)

// DefaultDurationBuckets are the session duration histogram buckets, in
// seconds. Most parses finish in milliseconds.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// NewDefaultConfig returns a configuration with every default applied.
// YAML is decoded on top of it, so boolean defaults survive keys that are
// absent from the file.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Parser: ParserConfig{
			MarkDirectories: DefaultParserMarkDirectories,
		},
		Metrics: MetricsConfig{
			Enabled: DefaultMetricsEnabled,
		},
		Tracing: TracingConfig{
			Enabled: DefaultTracingEnabled,
		},
		History: HistoryConfig{
			Enabled: DefaultHistoryEnabled,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.BufferSize == 0 {
		cfg.Parser.BufferSize = DefaultParserBufferSize
	}
	if cfg.Parser.MaxMessageLength == 0 {
		cfg.Parser.MaxMessageLength = DefaultParserMaxMessageLength
	}
	if cfg.Parser.MaxGlobMatches == 0 {
		cfg.Parser.MaxGlobMatches = DefaultParserMaxGlobMatches
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	// Tracing defaults
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Tracing.Timeout == 0 {
		cfg.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingService
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// History defaults
	if cfg.History.Driver == "" {
		cfg.History.Driver = DefaultHistoryDriver
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = DefaultHistoryBusyTimeout
	}
	if cfg.History.MaxOpenConns == 0 {
		cfg.History.MaxOpenConns = DefaultHistoryMaxOpenConns
	}
	if cfg.History.Retention == 0 {
		cfg.History.Retention = DefaultHistoryRetention
	}
	if cfg.History.PruneSchedule == "" {
		cfg.History.PruneSchedule = DefaultHistoryPruneSchedule
	}
}
