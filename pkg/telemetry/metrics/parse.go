package metrics

import (
	"time"

	"clockwork-hq/polc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks metrics related to parse sessions and the include
// controller.
type ParseMetrics struct {
	// Completed sessions by result
	sessionsTotal *prometheus.CounterVec

	// Session duration histogram
	sessionDuration prometheus.Histogram

	// Files opened per session
	sessionFiles prometheus.Histogram

	filesOpened prometheus.Counter

	// Includes not entered, by reason
	skippedTotal *prometheus.CounterVec

	diagnosticsTotal *prometheus.CounterVec

	// Glob expansions by outcome
	globTotal *prometheus.CounterVec

	// Paths per matched expansion
	globMatches prometheus.Histogram
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		sessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "sessions_total",
				Help:      "Total number of completed parse sessions",
			},
			[]string{"result"},
		),

		sessionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "session_duration_seconds",
				Help:      "Duration of parse sessions in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		sessionFiles: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "session_files",
				Help:      "Number of files opened per parse session",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512
			},
		),

		filesOpened: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_opened_total",
				Help:      "Total number of files pushed onto the include stack",
			},
		),

		skippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "includes_skipped_total",
				Help:      "Total number of include candidates that were not entered",
			},
			[]string{"reason"},
		),

		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "diagnostics_total",
				Help:      "Total number of reported diagnostics",
			},
			[]string{"severity"},
		),

		globTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "glob_expansions_total",
				Help:      "Total number of include glob expansions",
			},
			[]string{"outcome"},
		),

		globMatches: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "glob_matches",
				Help:      "Number of paths produced by a matched glob expansion",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 7), // 1 to 4096
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		pm.sessionsTotal,
		pm.sessionDuration,
		pm.sessionFiles,
		pm.filesOpened,
		pm.skippedTotal,
		pm.diagnosticsTotal,
		pm.globTotal,
		pm.globMatches,
	)

	return pm
}

// RecordSession records a completed parse session.
func (pm *ParseMetrics) RecordSession(success bool, duration time.Duration, files int) {
	result := "success"
	if !success {
		result = "failure"
	}
	pm.sessionsTotal.WithLabelValues(result).Inc()
	pm.sessionDuration.Observe(duration.Seconds())
	pm.sessionFiles.Observe(float64(files))
}

// RecordFileOpened counts a file pushed onto the include stack.
func (pm *ParseMetrics) RecordFileOpened() {
	pm.filesOpened.Inc()
}

// RecordSkipped counts a skipped include candidate.
func (pm *ParseMetrics) RecordSkipped(reason string) {
	pm.skippedTotal.WithLabelValues(reason).Inc()
}

// RecordDiagnostic counts a diagnostic by severity.
func (pm *ParseMetrics) RecordDiagnostic(severity string) {
	pm.diagnosticsTotal.WithLabelValues(severity).Inc()
}

// RecordGlob counts an expansion. Only matched expansions are observed
// in the matches histogram.
func (pm *ParseMetrics) RecordGlob(outcome string, matches int) {
	pm.globTotal.WithLabelValues(outcome).Inc()
	if outcome == "matched" {
		pm.globMatches.Observe(float64(matches))
	}
}
