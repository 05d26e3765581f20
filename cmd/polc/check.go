package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clockwork-hq/polc/pkg/cli"
	"clockwork-hq/polc/pkg/history"
	"clockwork-hq/polc/pkg/lang"
	"clockwork-hq/polc/pkg/telemetry/tracing"
)

var checkFlags struct {
	format  string
	record  bool
	strict  bool
	context bool
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Parse policy files and report diagnostics",
	Long: `Parse each root file together with everything it includes and report
warnings and errors as "file:line: severity: message".

Exit status is 0 when every file parsed, 1 when any file had errors (or
warnings with --strict), 2 for usage errors and 3 when a root file could
not be read at all.

Examples:
  # Check a single tree
  polc check site.pol

  # Strict mode (warnings as errors)
  polc check --strict site.pol

  # JSON output for CI/CD
  polc check --format json site.pol other.pol

  # Store the run in the parse history
  polc check --record site.pol`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
	checkCmd.Flags().BoolVar(&checkFlags.record, "record", false, "record each run in the parse history")
	checkCmd.Flags().BoolVar(&checkFlags.strict, "strict", false, "treat warnings as errors")
	checkCmd.Flags().BoolVar(&checkFlags.context, "context", true, "show source lines around each diagnostic (text output)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	format, err := cli.ParseFormat(checkFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return cli.NewExitError(cli.ExitUsage, err)
	}

	var store *history.Store
	if checkFlags.record {
		store, err = history.Open(&a.cfg.History, a.logger.Slog())
		if err != nil {
			return cli.NewCommandError("check", err)
		}
		defer store.Close()
	}

	withContext := format == cli.FormatText && checkFlags.context
	reports := make([]cli.FileReport, 0, len(args))

	for _, path := range args {
		ctx, span := a.tracer.StartParse(commandContext(cmd), path, "check")
		_, result, err := lang.Run(path, a.sessionConfig(nil))
		tracing.EndParse(span, result, err)
		if result == nil && !cli.IsRootUnavailable(err) {
			return cli.NewCommandError("check", err)
		}

		reports = append(reports, cli.NewFileReport(path, result, err, withContext))

		if store != nil && result != nil {
			if err := store.Save(ctx, history.NewRecord(result)); err != nil {
				a.logger.Warn("failed to record parse", "root", path, "error", err)
			}
		}
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(out, reports); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if err := cli.WriteText(out, reports); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if code := cli.ExitCodeFor(reports, checkFlags.strict); code != cli.ExitOK {
		return cli.NewExitError(code, nil)
	}
	return nil
}
