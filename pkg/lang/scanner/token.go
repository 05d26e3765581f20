package scanner

import "fmt"

// Kind identifies the lexical class of a token.
type Kind int

const (
	Illegal Kind = iota
	Ident
	String
	Number
	LBrace
	RBrace
	Semicolon
)

var kindNames = map[Kind]string{
	Illegal:   "illegal",
	Ident:     "identifier",
	String:    "string",
	Number:    "number",
	LBrace:    "'{'",
	RBrace:    "'}'",
	Semicolon: "';'",
}

// String returns a readable name for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is one lexical unit read from the active buffer.
type Token struct {
	Kind   Kind
	Text   string // identifier name, unquoted string value, number text or the offending input
	Line   int
	Column int
}

// String describes the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Ident, Number:
		return fmt.Sprintf("%s %s", t.Kind, t.Text)
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Illegal:
		return fmt.Sprintf("character %q", t.Text)
	default:
		return t.Kind.String()
	}
}
