package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"clockwork-hq/polc/pkg/cli"
	"clockwork-hq/polc/pkg/history"
)

var historyFlags struct {
	limit     int
	root      string
	format    string
	olderThan time.Duration
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and prune recorded parse runs",
	Long: `Recorded runs are written by "polc check --record" and by "polc watch"
when history is enabled. The database location and driver come from the
history section of the configuration.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Long: `List recorded runs, newest first.

Examples:
  polc history list
  polc history list --limit 5 --root site.pol --format json`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete recorded runs older than a duration",
	Long: `Delete recorded runs older than --older-than, or older than
history.retention when the flag is not given.

Examples:
  polc history prune --older-than 168h`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", history.DefaultListLimit, "maximum number of runs to show")
	historyListCmd.Flags().StringVar(&historyFlags.root, "root", "", "only show runs of this root file")
	historyListCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, yaml")

	historyPruneCmd.Flags().DurationVar(&historyFlags.olderThan, "older-than", 0, "age of the oldest run to keep (default: history.retention)")
}

func openHistory(cmd *cobra.Command) (*app, *history.Store, error) {
	a, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := history.Open(&a.cfg.History, a.logger.Slog())
	if err != nil {
		a.close()
		return nil, nil, cli.NewCommandError(cmd.Name(), err)
	}
	return a, store, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(historyFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatYAML)
	if err != nil {
		return cli.NewExitError(cli.ExitUsage, err)
	}

	a, store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	defer store.Close()

	records, err := store.List(commandContext(cmd), history.Query{
		Root:  historyFlags.root,
		Limit: historyFlags.limit,
	})
	if err != nil {
		return cli.NewCommandError("history list", err)
	}

	out := cmd.OutOrStdout()
	if format != cli.FormatText {
		return cli.NewFormatter(format).FormatTo(out, records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "no recorded runs")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tROOT\tSTATUS\tFILES\tWARNINGS\tERRORS\tDURATION\tID")
	for _, r := range records {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Root, status,
			len(r.Files), r.Warnings, r.Errors, r.Duration(), r.ID)
	}
	return tw.Flush()
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	a, store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	defer store.Close()

	retention := historyFlags.olderThan
	if retention == 0 {
		retention = a.cfg.History.Retention
	}
	if retention <= 0 {
		return cli.NewExitError(cli.ExitUsage, fmt.Errorf("--older-than must be positive"))
	}

	deleted, err := history.NewPruner(store, retention).Prune(commandContext(cmd))
	if err != nil {
		return cli.NewCommandError("history prune", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d runs older than %s\n", deleted, retention)
	return nil
}
