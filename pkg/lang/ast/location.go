package ast

import "fmt"

// Location represents the source location of a node in a policy file.
// It enables precise error reporting with file, line, and column information.
type Location struct {
	File   string `json:"file" yaml:"file"`                         // Path to the policy file
	Line   int    `json:"line" yaml:"line"`                         // Line number (1-based)
	Column int    `json:"column,omitempty" yaml:"column,omitempty"` // Column number (1-based, 0 when unknown)
}

// String returns a human-readable representation of the location.
// Format: "file:line:column", or "file:line" when the column is unknown.
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	if l.Column <= 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location has valid file and line information.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}
