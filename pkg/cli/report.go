package cli

import (
	"errors"
	"fmt"
	"io"

	"clockwork-hq/polc/pkg/lang/ast"
	langerrors "clockwork-hq/polc/pkg/lang/errors"
	"clockwork-hq/polc/pkg/lang/session"
)

// Diagnostic is the serializable form of a parse diagnostic.
type Diagnostic struct {
	File       string `json:"file" yaml:"file"`
	Line       int    `json:"line" yaml:"line"`
	Severity   string `json:"severity" yaml:"severity"`
	Type       string `json:"type" yaml:"type"`
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`

	err *langerrors.Error
}

// FileReport summarizes the parse of one root file.
type FileReport struct {
	Root        string       `json:"root" yaml:"root"`
	SessionID   string       `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Success     bool         `json:"success" yaml:"success"`
	Files       []string     `json:"files" yaml:"files"`
	Warnings    uint         `json:"warnings" yaml:"warnings"`
	Errors      uint         `json:"errors" yaml:"errors"`
	DurationMS  int64        `json:"duration_ms" yaml:"duration_ms"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`

	// Error is set when the root could not be read at all.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewFileReport builds a report from the outcome of lang.Run. With
// withContext set, each diagnostic carries the surrounding source lines
// for text output.
func NewFileReport(root string, result *session.Result, err error, withContext bool) FileReport {
	report := FileReport{
		Root:        root,
		Files:       []string{},
		Diagnostics: []Diagnostic{},
	}

	if result == nil {
		if err != nil {
			report.Error = err.Error()
		}
		return report
	}

	report.SessionID = result.SessionID
	report.Success = result.Success()
	report.Files = append(report.Files, result.Files...)
	report.Warnings = result.Warnings
	report.Errors = result.Errors
	report.DurationMS = result.Duration.Milliseconds()

	for _, d := range result.Diagnostics {
		if withContext {
			c := *d
			d = langerrors.AddContextToError(&c)
		}
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			File:       d.Location.File,
			Line:       d.Location.Line,
			Severity:   string(d.Severity),
			Type:       string(d.Type),
			Message:    d.Message,
			Suggestion: d.Suggestion,
			err:        d,
		})
	}

	return report
}

// Unavailable reports whether the root could not be read.
func (r FileReport) Unavailable() bool {
	return r.Error != ""
}

// Failed reports whether the parse counts as a failure. In strict mode
// warnings fail too.
func (r FileReport) Failed(strict bool) bool {
	if r.Unavailable() || !r.Success {
		return true
	}
	return strict && r.Warnings > 0
}

// ExitCodeFor returns the exit code of a check over reports.
func ExitCodeFor(reports []FileReport, strict bool) int {
	code := ExitOK
	for _, r := range reports {
		switch {
		case r.Unavailable():
			return ExitUnavailable
		case r.Failed(strict):
			code = ExitFailure
		}
	}
	return code
}

// WriteText prints every diagnostic in "file:line: severity: message" form,
// with source context when it was collected, then a summary line per root.
func WriteText(w io.Writer, reports []FileReport) error {
	for _, r := range reports {
		for _, d := range r.Diagnostics {
			text := d.String()
			if d.err != nil {
				text = d.err.Error()
			}
			if _, err := fmt.Fprintln(w, text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, r.Summary()); err != nil {
			return err
		}
	}
	return nil
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	e := &langerrors.Error{
		Severity: langerrors.Severity(d.Severity),
		Message:  d.Message,
		Location: ast.Location{File: d.File, Line: d.Line},
	}
	return e.Format()
}

// Summary renders the one-line outcome of a report.
func (r FileReport) Summary() string {
	if r.Unavailable() {
		return fmt.Sprintf("%s: unavailable: %s", r.Root, r.Error)
	}
	status := "ok"
	if !r.Success {
		status = "FAILED"
	}
	return fmt.Sprintf("%s: %s (%s, %s, %s)", r.Root, status,
		plural(len(r.Files), "file"),
		plural(int(r.Warnings), "warning"),
		plural(int(r.Errors), "error"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// IsRootUnavailable reports whether err means the root could not be read.
func IsRootUnavailable(err error) bool {
	return errors.Is(err, session.ErrRootUnavailable)
}
