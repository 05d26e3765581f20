/*
Package cli provides command-line interface utilities for polc.

The cli package includes output formatters, check reports, exit codes and
signal handling used by the polc command.

Output Formatting:

Command results can be written as text, JSON or YAML:

	format, err := cli.ParseFormat(flag, cli.FormatText, cli.FormatJSON)
	formatter := cli.NewFormatter(format)
	if err := formatter.FormatTo(os.Stdout, data); err != nil {
		return err
	}

Check Reports:

A FileReport summarizes one parse. Text output prints every diagnostic in
"file:line: severity: message" form, optionally followed by the offending
source lines:

	_, result, err := lang.Run(path, cfg)
	report := cli.NewFileReport(path, result, err, true)
	cli.WriteText(os.Stdout, []cli.FileReport{report})
	os.Exit(cli.ExitCodeFor(reports, strict))

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
