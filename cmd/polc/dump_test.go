package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"clockwork-hq/polc/pkg/cli"
	"clockwork-hq/polc/pkg/lang/ast"
)

func TestDump_JSON(t *testing.T) {
	dir := isolate(t)
	dumpFlags.format = "json"
	root := writeFile(t, filepath.Join(dir, "site.pol"), "include \"base.pol\";\npackage nginx { installed; }\n")
	base := writeFile(t, filepath.Join(dir, "base.pol"), "user www;\n")

	cmd, stdout, _ := newTestCommand()
	if err := runDump(cmd, []string{root}); err != nil {
		t.Fatalf("runDump() error = %v", err)
	}

	var doc ast.Document
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}
	if len(doc.Statements) != 2 {
		t.Fatalf("statements = %d, want 2", len(doc.Statements))
	}
	if got := doc.Statements[0].Location; got.File != base || got.Line != 1 {
		t.Errorf("first statement location = %v, want %s:1", got, base)
	}
	if got := doc.Statements[1]; got.Keyword != "package" || len(got.Body) != 1 {
		t.Errorf("second statement = %+v", got)
	}
	if len(doc.Includes) != 1 || doc.Includes[0].Spec != "base.pol" {
		t.Errorf("includes = %+v", doc.Includes)
	}
}

func TestDump_YAML(t *testing.T) {
	dir := isolate(t)
	dumpFlags.format = "yaml"
	root := writeFile(t, filepath.Join(dir, "site.pol"), "user www;\n")

	cmd, stdout, _ := newTestCommand()
	if err := runDump(cmd, []string{root}); err != nil {
		t.Fatalf("runDump() error = %v", err)
	}

	var doc ast.Document
	if err := yaml.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML output: %v\n%s", err, stdout.String())
	}
	if len(doc.Statements) != 1 || doc.Statements[0].Arg(0) != "www" {
		t.Errorf("statements = %+v", doc.Statements)
	}
}

func TestDump_ParseError(t *testing.T) {
	dir := isolate(t)
	dumpFlags.format = "json"
	root := writeFile(t, filepath.Join(dir, "site.pol"), "include \"missing.pol\";\n")

	cmd, stdout, stderr := newTestCommand()
	wantExitCode(t, runDump(cmd, []string{root}), cli.ExitFailure)

	if stdout.Len() != 0 {
		t.Errorf("expected no document, got %s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "error: can't stat "+filepath.Join(dir, "missing.pol")) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestDump_Errors(t *testing.T) {
	dir := isolate(t)

	dumpFlags.format = "text"
	cmd, _, _ := newTestCommand()
	wantExitCode(t, runDump(cmd, []string{"site.pol"}), cli.ExitUsage)

	dumpFlags.format = "json"
	cmd, _, _ = newTestCommand()
	wantExitCode(t, runDump(cmd, []string{filepath.Join(dir, "absent.pol")}), cli.ExitUnavailable)
}
