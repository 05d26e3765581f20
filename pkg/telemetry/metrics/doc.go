// Package metrics provides Prometheus metrics collection for polc.
//
// # Overview
//
// The Collector implements session.Recorder, so a parse session reports
// its include activity directly:
//
//	collector := metrics.NewCollector(&cfg.Metrics, prometheus.NewRegistry())
//	sessCfg := &session.Config{Recorder: collector}
//
// Watch mode and the parse history add their own counters through
// RecordReparse, SetWatchedFiles, RecordHistoryWrite and RecordPruned.
//
// # Metrics
//
// With the default namespace and subsystem:
//
//	polc_parser_sessions_total{result}            completed sessions, "success" or "failure"
//	polc_parser_session_duration_seconds          session wall time
//	polc_parser_session_files                     files opened per session
//	polc_parser_files_opened_total                files pushed onto the include stack
//	polc_parser_includes_skipped_total{reason}    stat, not_regular, open, already_seen
//	polc_parser_diagnostics_total{severity}       warning or error
//	polc_parser_glob_expansions_total{outcome}    no_match, matched, no_space, aborted
//	polc_parser_glob_matches                      paths per matched expansion
//	polc_parser_reparses_total{trigger}           watch re-parses by trigger
//	polc_parser_watched_files                     files currently watched
//	polc_parser_history_writes_total{result}      history inserts
//	polc_parser_history_pruned_total              history rows removed by retention
//
// Every label has a fixed, small value set.
//
// # Disabled Collection
//
// When MetricsConfig.Enabled is false all Record methods return
// immediately. A nil *Collector behaves the same way.
//
// # Prometheus Endpoint
//
// Handler serves the registry in the Prometheus exposition format
// (OpenMetrics when the scraper asks for it):
//
//	http.Handle(cfg.Metrics.Path, collector.Handler())
package metrics
