package ast

import "strings"

// Document is the root node built by the default statement grammar.
// One document collects the statements of the root file and of every
// file it includes, in scan order.
type Document struct {
	Statements []*Statement `json:"statements" yaml:"statements"`
	Includes   []*Include   `json:"includes,omitempty" yaml:"includes,omitempty"`
}

// Statement is a keyword followed by arguments and an optional body.
//
//	package "nginx" { installed; }
type Statement struct {
	Keyword  string       `json:"keyword" yaml:"keyword"`
	Args     []string     `json:"args,omitempty" yaml:"args,omitempty"`
	Body     []*Statement `json:"body,omitempty" yaml:"body,omitempty"`
	Block    bool         `json:"block,omitempty" yaml:"block,omitempty"`
	Location Location     `json:"location" yaml:"location"`
}

// Include records an include directive as written in the source.
type Include struct {
	Spec     string   `json:"spec" yaml:"spec"`
	Location Location `json:"location" yaml:"location"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		Statements: make([]*Statement, 0),
		Includes:   make([]*Include, 0),
	}
}

// Add appends a top-level statement.
func (d *Document) Add(stmt *Statement) {
	d.Statements = append(d.Statements, stmt)
}

// AddInclude records an include directive.
func (d *Document) AddInclude(inc *Include) {
	d.Includes = append(d.Includes, inc)
}

// Find returns the top-level statements with the given keyword.
func (d *Document) Find(keyword string) []*Statement {
	var result []*Statement
	for _, stmt := range d.Statements {
		if stmt.Keyword == keyword {
			result = append(result, stmt)
		}
	}
	return result
}

// Files returns the distinct source files that contributed statements,
// in the order they were first seen.
func (d *Document) Files() []string {
	seen := make(map[string]bool)
	var files []string
	Walk(d, func(stmt *Statement) bool {
		if f := stmt.Location.File; f != "" && !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
		return true
	})
	return files
}

// Arg returns the i-th argument or "" when out of range.
func (s *Statement) Arg(i int) string {
	if i < 0 || i >= len(s.Args) {
		return ""
	}
	return s.Args[i]
}

// String renders the statement header, e.g. `package "nginx"`.
func (s *Statement) String() string {
	var sb strings.Builder
	sb.WriteString(s.Keyword)
	for _, arg := range s.Args {
		sb.WriteString(" ")
		sb.WriteString(arg)
	}
	return sb.String()
}
