package lang

import (
	"clockwork-hq/polc/pkg/lang/ast"
	"clockwork-hq/polc/pkg/lang/grammar"
	"clockwork-hq/polc/pkg/lang/session"
)

// ParseFile is a convenience function that parses a policy file and every
// file it includes with the default grammar. cfg may be nil.
func ParseFile(path string, cfg *session.Config) (*ast.Document, error) {
	doc, _, err := Run(path, cfg)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Run parses a policy file like ParseFile and also returns the session
// result. Both are returned when the parse fails with diagnostics, so
// callers can report them; only a root that cannot be inspected returns a
// nil result.
func Run(path string, cfg *session.Config) (*ast.Document, *session.Result, error) {
	doc := ast.NewDocument()
	result, err := session.Run(path, doc, grammar.Statements{}, cfg)
	if result == nil {
		return nil, nil, err
	}
	return doc, result, err
}
