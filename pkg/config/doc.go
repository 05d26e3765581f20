// Package config provides configuration management for polc.
//
// Configuration is loaded from a YAML file with environment variable
// overrides, checked against sensible defaults, and validated as a whole.
//
// # Configuration Loading
//
// Configuration can be loaded in three ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("polc.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("polc.yaml")
//
//  3. The way the CLI does it, where a missing polc.yaml in the working
//     directory is not an error:
//     cfg, err := config.Load(flagPath)
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention POLC_SECTION_FIELD.
// For example:
//
//   - POLC_PARSER_MAX_GLOB_MATCHES overrides parser.max_glob_matches
//   - POLC_LOGGING_LEVEL overrides logging.level
//   - POLC_HISTORY_DRIVER overrides history.driver
//   - POLC_TRACING_SAMPLE_RATIO overrides tracing.sample_ratio
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Validation
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - parser.buffer_size: buffer size must be at least 16 bytes
//	  - watch.schedule: invalid cron expression: expected exactly 5 fields, found 2: [every day]
//
// # Example Configuration
//
//	parser:
//	  max_glob_matches: 1024
//
//	logging:
//	  level: "debug"
//	  format: "console"
//
//	tracing:
//	  enabled: true
//	  endpoint: "otel-collector:4317"
//	  insecure: true
//
//	watch:
//	  debounce: "500ms"
//	  schedule: "*/15 * * * *"
//
//	history:
//	  enabled: true
//	  driver: "sqlite"
//	  path: "data/history.db"
//	  retention: "168h"
package config
