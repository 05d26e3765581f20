package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"clockwork-hq/polc/pkg/cli"
	"clockwork-hq/polc/pkg/lang"
	"clockwork-hq/polc/pkg/lang/session"
	"clockwork-hq/polc/pkg/telemetry/tracing"
)

var dumpFlags struct {
	format string
}

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print the parsed document",
	Long: `Parse a root file with everything it includes and print the resulting
document: every statement in scan order with its source location, and every
include directive as written.

Diagnostics go to standard error. Nothing is printed when the parse fails.

Examples:
  polc dump site.pol
  polc dump --format yaml site.pol`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVar(&dumpFlags.format, "format", "json", "output format: json, yaml")
}

func runDump(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	format, err := cli.ParseFormat(dumpFlags.format, cli.FormatJSON, cli.FormatYAML)
	if err != nil {
		return cli.NewExitError(cli.ExitUsage, err)
	}

	_, span := a.tracer.StartParse(commandContext(cmd), args[0], "dump")
	doc, result, err := lang.Run(args[0], a.sessionConfig(nil))
	tracing.EndParse(span, result, err)
	switch {
	case cli.IsRootUnavailable(err):
		return cli.NewExitError(cli.ExitUnavailable, err)
	case result == nil:
		return cli.NewCommandError("dump", err)
	}

	// Warnings are reported but do not stop the dump.
	for _, d := range result.Diagnostics {
		fmt.Fprintln(cmd.ErrOrStderr(), d.Format())
	}
	if errors.Is(err, session.ErrParseFailed) {
		return cli.NewExitError(cli.ExitFailure, nil)
	}
	if err != nil {
		return cli.NewCommandError("dump", err)
	}

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), doc); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
