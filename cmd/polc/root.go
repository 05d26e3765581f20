package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"clockwork-hq/polc/pkg/cli"
	"clockwork-hq/polc/pkg/config"
	"clockwork-hq/polc/pkg/lang/session"
	"clockwork-hq/polc/pkg/telemetry/logging"
	"clockwork-hq/polc/pkg/telemetry/tracing"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "polc",
	Short: "polc - policy configuration parser",
	Long: `polc parses policy configuration trees. A root file may include other
files by path or glob pattern; every file is read at most once, so include
loops and aliases through symlinks are reported instead of followed.

Configuration is read from --config, or from polc.yaml in the working
directory when present, and can be overridden with POLC_* environment
variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the code carried by its error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: polc.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// app holds what every command needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	tracer *tracing.Tracer
}

// setup loads configuration and builds the logger and tracer. Logs go to
// the command's error stream so they never mix with results. Callers
// must defer close.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, cli.NewExitError(cli.ExitUsage, err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, cli.NewExitError(cli.ExitUsage, err)
	}
	slog.SetDefault(logger.Slog())

	tracer, err := tracing.New(&cfg.Tracing, Version)
	if err != nil {
		return nil, cli.NewCommandError("setup", err)
	}

	return &app{cfg: cfg, logger: logger, tracer: tracer}, nil
}

// close flushes pending spans.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Warn("failed to flush traces", "error", err)
	}
}

// sessionConfig translates the parser section into a session configuration.
func (a *app) sessionConfig(recorder session.Recorder) *session.Config {
	p := a.cfg.Parser
	return &session.Config{
		BufferSize:          p.BufferSize,
		MaxMessageLength:    p.MaxMessageLength,
		MaxGlobMatches:      p.MaxGlobMatches,
		UnmarkedDirectories: !p.MarkDirectories,
		Logger:              a.logger.Slog(),
		Recorder:            recorder,
	}
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
