package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	langerrors "clockwork-hq/polc/pkg/lang/errors"
)

// ErrParseFailed is matched by the error returned from Run when the session
// recorded at least one error.
var ErrParseFailed = errors.New("parse failed")

// ErrNoGrammar is returned by Run when no grammar is supplied.
var ErrNoGrammar = errors.New("no grammar")

// ParseError is returned by Run when the session recorded errors.
// It matches ErrParseFailed with errors.Is.
type ParseError struct {
	Root        string
	Warnings    uint
	Errors      uint
	Diagnostics []*langerrors.Error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse of %s failed: %d error(s), %d warning(s)", e.Root, e.Errors, e.Warnings)
}

// Is reports whether target is ErrParseFailed.
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailed
}

// Result summarizes a finished session.
type Result struct {
	SessionID   string
	Root        string
	Data        any
	Files       []string // every file opened, in open order
	Warnings    uint
	Errors      uint
	Diagnostics []*langerrors.Error
	Started     time.Time
	Duration    time.Duration
}

// Success reports whether the session recorded no errors.
func (r *Result) Success() bool {
	return r.Errors == 0
}

// Run parses the file at path with grammar. data is handed to the grammar
// through Context.Data and returned in the Result.
//
// A root path that cannot be inspected fails immediately with
// ErrRootUnavailable and no Result. Any other failure still returns the
// Result, with a *ParseError. Every file opened by the session is closed
// before Run returns, on every path.
func Run(path string, data any, grammar Grammar, cfg *Config) (*Result, error) {
	if grammar == nil {
		return nil, ErrNoGrammar
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootUnavailable, err)
	}

	cfg = cfg.withDefaults()
	started := time.Now()

	ctx := newContext(data, cfg)
	defer ctx.teardown()

	ctx.logger.Debug("Parse session started", "root", path)

	if err := ctx.OpenRoot(path); err == nil {
		if perr := grammar.Parse(ctx); perr != nil {
			ctx.reportGrammarError(perr)
		}
	}

	ctx.teardown()

	result := &Result{
		SessionID:   ctx.id,
		Root:        path,
		Data:        ctx.Data,
		Files:       ctx.Visited(),
		Warnings:    ctx.warnings,
		Errors:      ctx.errors,
		Diagnostics: ctx.Diagnostics(),
		Started:     started,
		Duration:    time.Since(started),
	}

	cfg.Recorder.RecordSession(result.Success(), result.Duration, len(result.Files))
	ctx.logger.Debug("Parse session finished",
		"root", path,
		"files", len(result.Files),
		"warnings", result.Warnings,
		"errors", result.Errors,
		"duration", result.Duration)

	if !result.Success() {
		return result, &ParseError{
			Root:        path,
			Warnings:    result.Warnings,
			Errors:      result.Errors,
			Diagnostics: result.Diagnostics,
		}
	}
	return result, nil
}

// ParseFile runs a session and returns only the user data.
func ParseFile(path string, data any, grammar Grammar, cfg *Config) (any, error) {
	result, err := Run(path, data, grammar, cfg)
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

// reportGrammarError records an error returned by the grammar, keeping its
// type and location when it is already a diagnostic.
func (c *Context) reportGrammarError(err error) {
	var diag *langerrors.Error
	if errors.As(err, &diag) {
		c.Report(diag)
		return
	}
	c.errorf(langerrors.ErrorTypeSyntax, "%v", err)
}
