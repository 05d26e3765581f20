package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"clockwork-hq/polc/pkg/cli"
	"clockwork-hq/polc/pkg/config"
	"clockwork-hq/polc/pkg/history"
	"clockwork-hq/polc/pkg/telemetry/health"
	"clockwork-hq/polc/pkg/telemetry/metrics"
	"clockwork-hq/polc/pkg/watch"
)

var watchFlags struct {
	schedule    string
	metricsAddr string
	debounce    time.Duration
	record      bool
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-check a policy tree whenever one of its files changes",
	Long: `Parse a root file, then watch every file the parse read and parse again
after each change. Files added by a new include are picked up on the next
parse.

With --metrics-addr (or metrics.enabled in the configuration) parse metrics
are served in the Prometheus format, next to /healthz, /readyz and
/version probes. With history enabled every parse is
recorded and old records are pruned on history.prune_schedule.

Examples:
  # Watch a tree
  polc watch site.pol

  # Also re-check every 15 minutes and expose metrics
  polc watch --schedule "*/15 * * * *" --metrics-addr 127.0.0.1:9464 site.pol`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron expression for periodic re-parses (default: watch.schedule)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve metrics on this address (default: metrics.listen_address when enabled)")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before re-parsing (default: watch.debounce)")
	watchCmd.Flags().BoolVar(&watchFlags.record, "record", false, "record every parse in the history")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	metricsCfg := a.cfg.Metrics
	if watchFlags.metricsAddr != "" {
		metricsCfg.Enabled = true
		metricsCfg.ListenAddress = watchFlags.metricsAddr
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&metricsCfg, registry)

	opts := watch.Options{
		Root:      args[0],
		Session:   a.sessionConfig(collector),
		Debounce:  a.cfg.Watch.Debounce,
		Schedule:  a.cfg.Watch.Schedule,
		Reporter:  collector,
		Tracer:    a.tracer,
		Logger:    a.logger.Slog(),
		OnOutcome: printOutcome(cmd, args[0]),
	}
	if watchFlags.debounce > 0 {
		opts.Debounce = watchFlags.debounce
	}
	if watchFlags.schedule != "" {
		opts.Schedule = watchFlags.schedule
	}

	checker := health.New(2 * time.Second)

	if a.cfg.History.Enabled || watchFlags.record {
		store, err := history.Open(&a.cfg.History, a.logger.Slog())
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer store.Close()
		store.SetRecorder(collector)
		checker.RegisterCheck("history", store.Ping)

		opts.History = store
		opts.Pruner = history.NewPruner(store, a.cfg.History.Retention)
		opts.PruneSchedule = a.cfg.History.PruneSchedule
	}

	w, err := watch.New(opts)
	if err != nil {
		return cli.NewExitError(cli.ExitUsage, err)
	}
	checker.RegisterCheck("parse", w.Ready)

	if metricsCfg.Enabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		shutdown, err := serveMetrics(a, &metricsCfg, collector, checker)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer shutdown()
	}

	if err := w.Run(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// printOutcome writes the diagnostics and summary of every parse to the
// command output.
func printOutcome(cmd *cobra.Command, root string) func(watch.Outcome) {
	return func(o watch.Outcome) {
		report := cli.NewFileReport(root, o.Result, o.Err, true)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "[%s] %s\n", time.Now().Format(time.TimeOnly), o.Trigger)
		_ = cli.WriteText(out, []cli.FileReport{report})
	}
}

// serveMetrics starts the metrics and health endpoints and returns a
// function that shuts them down.
func serveMetrics(a *app, cfg *config.MetricsConfig, collector *metrics.Collector, checker *health.Checker) (func(), error) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, collector.Handler())
	health.Register(mux, checker, Version, GitCommit, BuildDate)

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return nil, fmt.Errorf("metrics server: %w", err)
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	a.logger.Info("serving metrics", "address", listener.Addr().String(), "path", cfg.Path)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.logger.Error("metrics server shutdown failed", "error", err)
		}
	}, nil
}
