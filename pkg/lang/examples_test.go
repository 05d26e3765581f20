package lang_test

import (
	"fmt"
	"io"
	"log/slog"

	"clockwork-hq/polc/pkg/lang"
	"clockwork-hq/polc/pkg/lang/session"
)

func ExampleParseFile() {
	cfg := &session.Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	doc, err := lang.ParseFile("testdata/site.pol", cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, stmt := range doc.Statements {
		fmt.Printf("%s (%s)\n", stmt, stmt.Location)
	}
	// Output:
	// user www-data (testdata/conf.d/10-base.pol:1:1)
	// limit open_files 4096 (testdata/conf.d/20-limits.pol:1:1)
	// package nginx (testdata/site.pol:4:1)
}

func ExampleRun() {
	cfg := &session.Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	_, result, err := lang.Run("testdata/loop/a.pol", cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("files:", len(result.Files))
	for _, d := range result.Diagnostics {
		fmt.Println(d.Format())
	}
	// Output:
	// files: 2
	// testdata/loop/b.pol:1: warning: skipping testdata/loop/a.pol (already seen)
}
