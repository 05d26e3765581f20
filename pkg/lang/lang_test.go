package lang

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"clockwork-hq/polc/pkg/lang/ast"
	langerrors "clockwork-hq/polc/pkg/lang/errors"
	"clockwork-hq/polc/pkg/lang/session"
)

func quietConfig() *session.Config {
	return &session.Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func keywords(doc *ast.Document) []string {
	var out []string
	ast.Walk(doc, func(s *ast.Statement) bool {
		out = append(out, s.Keyword)
		return true
	})
	return out
}

func TestParseFile_Site(t *testing.T) {
	doc, result, err := Run("testdata/site.pol", quietConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"user", "limit", "package", "version", "service"}
	if diff := cmp.Diff(want, keywords(doc)); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}

	wantFiles := []string{
		"testdata/site.pol",
		"testdata/conf.d/10-base.pol",
		"testdata/conf.d/20-limits.pol",
	}
	if diff := cmp.Diff(wantFiles, result.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	// 20-limits.pol includes site.pol back through "..".
	if result.Warnings != 1 {
		t.Fatalf("Warnings = %d, want 1", result.Warnings)
	}
	d := result.Diagnostics[0]
	if d.Type != langerrors.ErrorTypeAlreadySeen {
		t.Errorf("Type = %q, want %q", d.Type, langerrors.ErrorTypeAlreadySeen)
	}
	if want := "testdata/conf.d/20-limits.pol:2: warning: skipping testdata/conf.d/../site.pol (already seen)"; d.Format() != want {
		t.Errorf("Format() = %q, want %q", d.Format(), want)
	}
}

func TestParseFile_Loop(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "loop", "a.pol"), quietConfig())
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if diff := cmp.Diff([]string{"from_b", "from_a"}, keywords(doc)); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile_Missing(t *testing.T) {
	doc, err := ParseFile("testdata/missing.pol", quietConfig())
	if !errors.Is(err, session.ErrRootUnavailable) {
		t.Errorf("ParseFile() error = %v, want ErrRootUnavailable", err)
	}
	if doc != nil {
		t.Errorf("ParseFile() doc = %+v, want nil", doc)
	}
}

func TestRun_FailureKeepsResult(t *testing.T) {
	// A directory is inspectable but not a regular file.
	doc, result, err := Run("testdata/conf.d", quietConfig())
	if !errors.Is(err, session.ErrParseFailed) {
		t.Fatalf("Run() error = %v, want ErrParseFailed", err)
	}
	if doc == nil || result == nil {
		t.Fatal("Run() returned nil document or result on parse failure")
	}
	if result.Errors != 1 {
		t.Errorf("Errors = %d, want 1", result.Errors)
	}
}
