package errors

import (
	"fmt"
	"strings"

	"clockwork-hq/polc/pkg/lang/ast"
)

// ErrorType categorizes a diagnostic raised while resolving includes or parsing.
type ErrorType string

const (
	ErrorTypeStat         ErrorType = "stat"          // Path could not be inspected
	ErrorTypeNotRegular   ErrorType = "not_regular"   // Directory, device or other non-regular target
	ErrorTypeOpen         ErrorType = "open"          // Permission, too many open files
	ErrorTypeAlloc        ErrorType = "alloc"         // Bookkeeping could not be allocated
	ErrorTypeFormat       ErrorType = "format"        // Diagnostic message could not be rendered
	ErrorTypeGlobNoSpace  ErrorType = "glob_nospace"  // Glob expansion produced too many matches
	ErrorTypeGlobAborted  ErrorType = "glob_aborted"  // Glob expansion failed
	ErrorTypeAlreadySeen  ErrorType = "already_seen"  // Include target skipped, loop prevention
	ErrorTypeSyntax       ErrorType = "syntax"        // Grammar rejected the input
	ErrorTypeIncludeOrder ErrorType = "include_order" // Include stack closed out of order
	ErrorTypeGeneric      ErrorType = "generic"       // Anything the grammar reports without a type
)

// Severity distinguishes warnings from errors. Only errors fail a parse.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Error is a single diagnostic with its source location.
type Error struct {
	Type       ErrorType    // Category of the diagnostic
	Severity   Severity     // Warning or error
	Message    string       // Rendered message
	Location   ast.Location // File and line current when the diagnostic was raised
	Context    string       // Surrounding lines of source (optional)
	Suggestion string       // Suggested fix (optional)
}

// Format renders the diagnostic on one line as "file:line: severity: message".
func (e *Error) Format() string {
	file := e.Location.File
	if file == "" {
		file = "<none>"
	}
	return fmt.Sprintf("%s:%d: %s: %s", file, e.Location.Line, e.Severity, e.Message)
}

// Error implements the error interface.
// It returns the one-line form followed by context and suggestion when present.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Format())

	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// IsWarning reports whether the diagnostic is a warning.
func (e *Error) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// ErrorList represents a collection of diagnostics gathered during a parse.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends a diagnostic to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Severity: SeverityError,
		Message:  message,
		Location: location,
	})
}

// AddWarning creates and adds a new warning with the given parameters.
func (el *ErrorList) AddWarning(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Severity: SeverityWarning,
		Message:  message,
		Location: location,
	})
}

// HasErrors returns true if the list contains at least one error-severity entry.
func (el *ErrorList) HasErrors() bool {
	return el.CountSeverity(SeverityError) > 0
}

// Count returns the number of diagnostics in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// CountSeverity returns the number of diagnostics with the given severity.
func (el *ErrorList) CountSeverity(sev Severity) int {
	n := 0
	for _, err := range el.Errors {
		if err.Severity == sev {
			n++
		}
	}
	return n
}

// Error implements the error interface.
// It returns all diagnostics, one per line.
func (el *ErrorList) Error() string {
	if len(el.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range el.Errors {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(err.Format())
	}
	return sb.String()
}

// ToError returns nil if the list holds no errors, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all diagnostics of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the list contains at least one diagnostic of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
