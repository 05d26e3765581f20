package metrics

import (
	"time"

	"clockwork-hq/polc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the main orchestrator for all Prometheus metrics in polc.
// It manages metric registration and provides a unified interface for
// recording metrics from parse sessions, watch mode and the history store.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Parse session metrics
	parseMetrics *ParseMetrics

	// Watch mode and history metrics
	watchMetrics *WatchMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "polc",
//		Subsystem: "parser",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.watchMetrics = NewWatchMetrics(cfg, registry)

	return c
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordFileOpened counts a file pushed onto the include stack.
func (c *Collector) RecordFileOpened() {
	if !c.enabled() {
		return
	}
	c.parseMetrics.RecordFileOpened()
}

// RecordSkipped counts an include that was not entered.
//
// Parameters:
//   - reason: "stat", "not_regular", "open" or "already_seen"
func (c *Collector) RecordSkipped(reason string) {
	if !c.enabled() {
		return
	}
	c.parseMetrics.RecordSkipped(reason)
}

// RecordDiagnostic counts a reported warning or error.
func (c *Collector) RecordDiagnostic(severity string) {
	if !c.enabled() {
		return
	}
	c.parseMetrics.RecordDiagnostic(severity)
}

// RecordGlob records a glob expansion and, for matched expansions, the
// number of paths it produced.
func (c *Collector) RecordGlob(outcome string, matches int) {
	if !c.enabled() {
		return
	}
	c.parseMetrics.RecordGlob(outcome, matches)
}

// RecordSession records a completed parse session.
//
// Example:
//
//	collector.RecordSession(true, 3*time.Millisecond, 4)
func (c *Collector) RecordSession(success bool, duration time.Duration, files int) {
	if !c.enabled() {
		return
	}
	c.parseMetrics.RecordSession(success, duration, files)
}

// RecordReparse counts a watch mode re-parse.
//
// Parameters:
//   - trigger: "initial", "change" or "schedule"
func (c *Collector) RecordReparse(trigger string) {
	if !c.enabled() {
		return
	}
	c.watchMetrics.RecordReparse(trigger)
}

// SetWatchedFiles updates the number of files watch mode is following.
func (c *Collector) SetWatchedFiles(n int) {
	if !c.enabled() {
		return
	}
	c.watchMetrics.SetWatchedFiles(n)
}

// RecordHistoryWrite counts a history insert. A non-nil err counts as a failure.
func (c *Collector) RecordHistoryWrite(err error) {
	if !c.enabled() {
		return
	}
	c.watchMetrics.RecordHistoryWrite(err)
}

// RecordPruned adds n removed history rows.
func (c *Collector) RecordPruned(n int64) {
	if !c.enabled() {
		return
	}
	c.watchMetrics.RecordPruned(n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
