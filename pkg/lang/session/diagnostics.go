package session

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"clockwork-hq/polc/pkg/lang/ast"
	langerrors "clockwork-hq/polc/pkg/lang/errors"
)

// badVerb marks a verb fmt could not satisfy (missing operand, wrong type,
// unknown verb).
const badVerb = "%!"

// Warnf records a warning at the current file and line. Warnings never fail
// a parse. If the message cannot be rendered an error is counted instead.
func (c *Context) Warnf(format string, args ...any) {
	c.warnf(langerrors.ErrorTypeGeneric, format, args...)
}

// Errorf records an error at the current file and line.
// Any error fails the parse once the session ends.
func (c *Context) Errorf(format string, args ...any) {
	c.errorf(langerrors.ErrorTypeGeneric, format, args...)
}

// Report records a diagnostic built by the grammar. Its location defaults
// to the current file and line.
func (c *Context) Report(d *langerrors.Error) {
	if d == nil {
		return
	}
	if !d.Location.IsValid() {
		d.Location = c.location()
	}
	d.Message = c.truncate(d.Message)
	if d.Severity != langerrors.SeverityWarning {
		d.Severity = langerrors.SeverityError
	}
	c.record(d)
}

func (c *Context) warnf(typ langerrors.ErrorType, format string, args ...any) {
	msg, ok := c.render(format, args...)
	if !ok {
		// A warning that cannot be rendered is reported as an error.
		c.errorf(langerrors.ErrorTypeFormat, "formatting failed in warning")
		return
	}
	c.record(&langerrors.Error{
		Type:     typ,
		Severity: langerrors.SeverityWarning,
		Message:  msg,
		Location: c.location(),
	})
}

func (c *Context) errorf(typ langerrors.ErrorType, format string, args ...any) {
	msg, ok := c.render(format, args...)
	if !ok {
		typ = langerrors.ErrorTypeFormat
		msg = "formatting failed in error"
	}
	c.record(&langerrors.Error{
		Type:     typ,
		Severity: langerrors.SeverityError,
		Message:  msg,
		Location: c.location(),
	})
}

func (c *Context) record(d *langerrors.Error) {
	if d.IsWarning() {
		c.warnings++
	} else {
		c.errors++
	}
	c.diagnostics.Add(d)
	c.recorder.RecordDiagnostic(string(d.Severity))

	attrs := []any{"type", string(d.Type), "file", d.Location.File, "line", d.Location.Line}
	if d.IsWarning() {
		c.logger.Warn(d.Message, attrs...)
	} else {
		c.logger.Error(d.Message, attrs...)
	}
}

func (c *Context) location() ast.Location {
	line := 0
	if c.engine != nil && !c.torndown {
		line = c.engine.LineNumber()
	}
	return ast.Location{File: c.current, Line: line}
}

// render formats and truncates a message. It reports false when fmt flagged
// a bad verb that did not come from one of the arguments themselves.
func (c *Context) render(format string, args ...any) (string, bool) {
	msg := fmt.Sprintf(format, args...)
	if strings.Contains(msg, badVerb) && !argsContain(args, badVerb) {
		return "", false
	}
	return c.truncate(msg), true
}

// truncate cuts msg to the message limit, leaving room for the terminator
// the limit traditionally included, without splitting a UTF-8 sequence.
func (c *Context) truncate(msg string) string {
	limit := c.cfg.MaxMessageLength - 1
	if limit < 1 || len(msg) <= limit {
		return msg
	}
	for limit > 0 && !utf8.RuneStart(msg[limit]) {
		limit--
	}
	return msg[:limit]
}

func argsContain(args []any, s string) bool {
	for _, a := range args {
		if strings.Contains(fmt.Sprint(a), s) {
			return true
		}
	}
	return false
}
