package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"clockwork-hq/polc/pkg/cli"
)

func resetCheckFlags() {
	checkFlags.format = "text"
	checkFlags.record = false
	checkFlags.strict = false
	checkFlags.context = true
}

func TestCheck_Clean(t *testing.T) {
	dir := isolate(t)
	resetCheckFlags()
	root := writeFile(t, filepath.Join(dir, "site.pol"), "include \"conf.d/*.pol\";\n")
	writeFile(t, filepath.Join(dir, "conf.d", "a.pol"), "user www;\n")

	cmd, stdout, _ := newTestCommand()
	if err := runCheck(cmd, []string{root}); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}

	want := root + ": ok (2 files, 0 warnings, 0 errors)\n"
	if stdout.String() != want {
		t.Errorf("output = %q, want %q", stdout.String(), want)
	}
}

func TestCheck_Warnings(t *testing.T) {
	dir := isolate(t)
	resetCheckFlags()
	root := writeFile(t, filepath.Join(dir, "site.pol"), "include \"site.pol\";\n")

	cmd, stdout, _ := newTestCommand()
	if err := runCheck(cmd, []string{root}); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "warning: skipping") {
		t.Errorf("output missing warning:\n%s", stdout.String())
	}

	checkFlags.strict = true
	cmd, _, _ = newTestCommand()
	wantExitCode(t, runCheck(cmd, []string{root}), cli.ExitFailure)
}

func TestCheck_Errors(t *testing.T) {
	dir := isolate(t)
	resetCheckFlags()
	root := writeFile(t, filepath.Join(dir, "site.pol"), "name site;\ninclude \"missing.pol\";\n")

	cmd, stdout, _ := newTestCommand()
	wantExitCode(t, runCheck(cmd, []string{root}), cli.ExitFailure)

	out := stdout.String()
	for _, want := range []string{
		root + ":2: error: can't stat " + filepath.Join(dir, "missing.pol"),
		"-> 2 | include \"missing.pol\";",
		root + ": FAILED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheck_MissingRoot(t *testing.T) {
	dir := isolate(t)
	resetCheckFlags()
	good := writeFile(t, filepath.Join(dir, "good.pol"), "a;\n")

	cmd, stdout, _ := newTestCommand()
	err := runCheck(cmd, []string{good, filepath.Join(dir, "absent.pol")})
	wantExitCode(t, err, cli.ExitUnavailable)

	if !strings.Contains(stdout.String(), "absent.pol: unavailable") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestCheck_JSON(t *testing.T) {
	dir := isolate(t)
	resetCheckFlags()
	checkFlags.format = "json"
	root := writeFile(t, filepath.Join(dir, "site.pol"), "include \"site.pol\";\n")

	cmd, stdout, _ := newTestCommand()
	if err := runCheck(cmd, []string{root}); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}

	var reports []cli.FileReport
	if err := json.Unmarshal(stdout.Bytes(), &reports); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}
	if len(reports) != 1 || reports[0].Warnings != 1 {
		t.Fatalf("reports = %+v", reports)
	}
	if d := reports[0].Diagnostics[0]; d.Type != "already_seen" || d.Line != 1 {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestCheck_BadFormat(t *testing.T) {
	isolate(t)
	resetCheckFlags()
	checkFlags.format = "xml"

	cmd, _, _ := newTestCommand()
	wantExitCode(t, runCheck(cmd, []string{"site.pol"}), cli.ExitUsage)
}
