package metrics

import (
	"clockwork-hq/polc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// WatchMetrics tracks watch mode re-parses and parse history maintenance.
type WatchMetrics struct {
	reparsesTotal *prometheus.CounterVec

	watchedFiles prometheus.Gauge

	historyWrites *prometheus.CounterVec

	historyPruned prometheus.Counter
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		reparsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reparses_total",
				Help:      "Total number of watch mode re-parses",
			},
			[]string{"trigger"},
		),

		watchedFiles: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watched_files",
				Help:      "Number of files currently watched for changes",
			},
		),

		historyWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_writes_total",
				Help:      "Total number of parse history inserts",
			},
			[]string{"result"},
		),

		historyPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_pruned_total",
				Help:      "Total number of parse history records removed by retention",
			},
		),
	}

	registry.MustRegister(
		wm.reparsesTotal,
		wm.watchedFiles,
		wm.historyWrites,
		wm.historyPruned,
	)

	return wm
}

// RecordReparse counts a re-parse by trigger.
func (wm *WatchMetrics) RecordReparse(trigger string) {
	wm.reparsesTotal.WithLabelValues(trigger).Inc()
}

// SetWatchedFiles sets the watched file gauge.
func (wm *WatchMetrics) SetWatchedFiles(n int) {
	wm.watchedFiles.Set(float64(n))
}

// RecordHistoryWrite counts an insert as "success" or "error".
func (wm *WatchMetrics) RecordHistoryWrite(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	wm.historyWrites.WithLabelValues(result).Inc()
}

// RecordPruned adds n pruned records.
func (wm *WatchMetrics) RecordPruned(n int64) {
	if n <= 0 {
		return
	}
	wm.historyPruned.Add(float64(n))
}
