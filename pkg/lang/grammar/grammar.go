package grammar

import (
	"errors"
	"fmt"
	"io"

	"clockwork-hq/polc/pkg/lang/ast"
	langerrors "clockwork-hq/polc/pkg/lang/errors"
	"clockwork-hq/polc/pkg/lang/scanner"
	"clockwork-hq/polc/pkg/lang/session"
)

// IncludeKeyword starts an include directive.
const IncludeKeyword = "include"

var (
	// ErrNoDocument is returned when the session data is not an *ast.Document.
	ErrNoDocument = errors.New("session data is not an *ast.Document")

	// ErrNoTokens is returned when the session engine cannot produce tokens.
	ErrNoTokens = errors.New("session engine does not produce tokens")
)

// TokenSource is implemented by engines the grammar can read from.
// *scanner.Scanner is one.
type TokenSource interface {
	Next() (scanner.Token, error)
	// SkipSemicolon consumes a ';' on the current line, if there is one.
	SkipSemicolon() bool
}

// Statements is the default grammar. It appends every statement to the
// *ast.Document passed as session data:
//
//	document  = { statement } .
//	statement = "include" STRING [ ";" ]
//	          | IDENT { arg } ( ";" | "{" { statement } "}" ) .
//	arg       = STRING | IDENT | NUMBER .
//
// Tokens flow across file boundaries: an include takes effect at the point
// it is read, and the included file's statements land wherever the
// directive stood, including inside a block.
type Statements struct{}

// Parse implements session.Grammar.
func (Statements) Parse(ctx *session.Context) error {
	doc, ok := ctx.Data.(*ast.Document)
	if !ok || doc == nil {
		return ErrNoDocument
	}
	src, ok := ctx.Engine().(TokenSource)
	if !ok {
		return ErrNoTokens
	}

	p := &parser{ctx: ctx, src: src, doc: doc}
	return p.parseDocument()
}

type parser struct {
	ctx *session.Context
	src TokenSource
	doc *ast.Document

	tok  scanner.Token
	loc  ast.Location
	done bool

	// optional holds the depths of include directives whose ';' was not on
	// the path's line. The first token read back at that depth may be it.
	optional []int
}

// next advances to the next token. End of a buffer hands control to the
// include controller; the token stream ends when it reports Finished.
func (p *parser) next() error {
	for {
		if p.done {
			p.tok = scanner.Token{}
			return nil
		}
		depth := p.ctx.Depth()
		for n := len(p.optional); n > 0 && p.optional[n-1] > depth; n-- {
			p.optional = p.optional[:n-1]
		}

		tok, err := p.src.Next()
		if errors.Is(err, io.EOF) {
			if p.ctx.IncludeDone() == session.Finished {
				p.done = true
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", p.ctx.CurrentFile(), err)
		}
		if n := len(p.optional); n > 0 && p.optional[n-1] == depth {
			p.optional = p.optional[:n-1]
			if tok.Kind == scanner.Semicolon {
				continue
			}
		}
		p.tok = tok
		p.loc = p.location(tok)
		return nil
	}
}

func (p *parser) location(tok scanner.Token) ast.Location {
	return ast.Location{File: p.ctx.CurrentFile(), Line: tok.Line, Column: tok.Column}
}

func (p *parser) parseDocument() error {
	for {
		if err := p.next(); err != nil {
			return err
		}
		if p.done {
			return nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return err
		}
		if stmt != nil {
			p.doc.Add(stmt)
		}
	}
}

// parseStatement parses the statement starting at the current token.
// Include directives return a nil statement.
func (p *parser) parseStatement() (*ast.Statement, error) {
	if p.tok.Kind != scanner.Ident {
		return nil, p.unexpected("a keyword")
	}

	if p.tok.Text == IncludeKeyword {
		return nil, p.parseInclude()
	}

	stmt := &ast.Statement{Keyword: p.tok.Text, Location: p.loc}
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.done {
			return nil, p.syntaxError(fmt.Sprintf("unexpected end of input in %q", stmt.Keyword),
				"terminate the statement with ';' or a block")
		}

		switch p.tok.Kind {
		case scanner.String, scanner.Ident, scanner.Number:
			stmt.Args = append(stmt.Args, p.tok.Text)
		case scanner.Semicolon:
			return stmt, nil
		case scanner.LBrace:
			stmt.Block = true
			body, err := p.parseBlock(stmt.Keyword)
			if err != nil {
				return nil, err
			}
			stmt.Body = body
			return stmt, nil
		default:
			return nil, p.unexpected("';' or '{'")
		}
	}
}

func (p *parser) parseBlock(keyword string) ([]*ast.Statement, error) {
	body := make([]*ast.Statement, 0)
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.done {
			return nil, p.syntaxError(fmt.Sprintf("unexpected end of input in %q block", keyword),
				"close the block with '}'")
		}
		if p.tok.Kind == scanner.RBrace {
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}
}

// parseInclude handles `include STRING [;]`. Only a ';' on the path's line
// is consumed before the include is pushed, so the controller sees the
// directive's line and the including buffer is not ended early. A ';' on a
// later line is dropped when the chain returns to this file.
func (p *parser) parseInclude() error {
	loc := p.loc
	if err := p.next(); err != nil {
		return err
	}
	if p.done || p.tok.Kind != scanner.String {
		return p.unexpected("a quoted path after include")
	}
	spec := p.tok.Text
	p.doc.AddInclude(&ast.Include{Spec: spec, Location: loc})

	if !p.src.SkipSemicolon() {
		p.optional = append(p.optional, p.ctx.Depth())
	}
	p.ctx.Include(spec)
	return nil
}

func (p *parser) unexpected(want string) error {
	if p.done {
		return p.syntaxError("unexpected end of input, expected "+want, "")
	}
	return p.syntaxError(fmt.Sprintf("unexpected %s, expected %s", p.tok, want), "")
}

func (p *parser) syntaxError(msg, suggestion string) error {
	loc := p.loc
	if p.done {
		loc = ast.Location{File: p.ctx.CurrentFile(), Line: p.ctx.Line()}
	}
	return &langerrors.Error{
		Type:       langerrors.ErrorTypeSyntax,
		Severity:   langerrors.SeverityError,
		Message:    "syntax error: " + msg,
		Location:   loc,
		Suggestion: suggestion,
	}
}
