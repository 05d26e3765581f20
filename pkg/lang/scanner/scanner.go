package scanner

import (
	"io"
	"strings"
)

// Scanner is a reentrant tokenizer over a stack of input buffers.
// All state lives in the Scanner value; nothing is package-global, so
// independent scanners may run on separate goroutines.
//
// Next reads from the buffer on top of the stack. When that buffer is
// exhausted Next returns io.EOF and leaves the stack alone: whoever drives
// the scanner decides whether to pop and resume the parent buffer.
type Scanner struct {
	stack []*Buffer
	extra any
}

// New creates a scanner carrying the caller's extra data.
func New(extra any) *Scanner {
	return &Scanner{
		stack: make([]*Buffer, 0, 4),
		extra: extra,
	}
}

// Extra returns the data passed to New.
func (s *Scanner) Extra() any {
	return s.extra
}

// CreateBuffer creates a buffer reading from r. It is not pushed.
func (s *Scanner) CreateBuffer(r io.Reader, size int) *Buffer {
	return NewBuffer(r, size)
}

// PushBuffer makes b the active buffer.
func (s *Scanner) PushBuffer(b *Buffer) {
	s.stack = append(s.stack, b)
}

// PopBuffer discards the active buffer and resumes the one below it.
// Popping an empty stack is a no-op.
func (s *Scanner) PopBuffer() {
	if len(s.stack) == 0 {
		return
	}
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth returns the number of pushed buffers.
func (s *Scanner) Depth() int {
	return len(s.stack)
}

// LineNumber returns the line number in the active buffer, or 0 when no
// buffer is pushed.
func (s *Scanner) LineNumber() int {
	if b := s.top(); b != nil {
		return b.line
	}
	return 0
}

// Destroy releases every buffer. The scanner must not be used afterwards.
func (s *Scanner) Destroy() {
	for i := range s.stack {
		s.stack[i] = nil
	}
	s.stack = nil
	s.extra = nil
}

func (s *Scanner) top() *Buffer {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Next returns the next token from the active buffer.
// It returns io.EOF when the active buffer is exhausted or no buffer is pushed.
func (s *Scanner) Next() (Token, error) {
	b := s.top()
	if b == nil {
		return Token{}, io.EOF
	}

	if err := skipBlank(b); err != nil {
		return Token{}, err
	}

	c, err := b.readByte()
	if err != nil {
		return Token{}, err
	}
	tok := Token{Line: b.line, Column: b.column}

	switch {
	case c == '{':
		tok.Kind = LBrace
		tok.Text = "{"
	case c == '}':
		tok.Kind = RBrace
		tok.Text = "}"
	case c == ';':
		tok.Kind = Semicolon
		tok.Text = ";"
	case c == '"':
		return scanString(b, tok)
	case isDigit(c) || c == '-':
		tok.Kind = Number
		tok.Text = string(c) + scanWhile(b, isNumberPart)
		if tok.Text == "-" {
			tok.Kind = Illegal
		}
	case isIdentStart(c):
		tok.Kind = Ident
		tok.Text = string(c) + scanWhile(b, isIdentPart)
	default:
		tok.Kind = Illegal
		tok.Text = string(c)
	}
	return tok, nil
}

// SkipSemicolon consumes spaces, tabs and a ';' on the current line of the
// active buffer. It never reads past a newline and reports whether a ';'
// was consumed.
func (s *Scanner) SkipSemicolon() bool {
	b := s.top()
	if b == nil {
		return false
	}
	for {
		c, ok := b.peekByte()
		if !ok {
			return false
		}
		switch c {
		case ' ', '\t', '\r':
			_, _ = b.readByte()
		case ';':
			_, _ = b.readByte()
			return true
		default:
			return false
		}
	}
}

// skipBlank skips whitespace and '#' comments.
func skipBlank(b *Buffer) error {
	for {
		c, ok := b.peekByte()
		if !ok {
			b.eof = true
			return io.EOF
		}
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			_, _ = b.readByte()
		case c == '#':
			for {
				c, err := b.readByte()
				if err != nil {
					return err
				}
				if c == '\n' {
					break
				}
			}
		default:
			return nil
		}
	}
}

func scanString(b *Buffer, tok Token) (Token, error) {
	var sb strings.Builder
	for {
		c, err := b.readByte()
		if err != nil {
			tok.Kind = Illegal
			tok.Text = `"` + sb.String()
			return tok, nil
		}
		switch c {
		case '"':
			tok.Kind = String
			tok.Text = sb.String()
			return tok, nil
		case '\n':
			tok.Kind = Illegal
			tok.Text = `"` + sb.String()
			return tok, nil
		case '\\':
			esc, err := b.readByte()
			if err != nil {
				tok.Kind = Illegal
				tok.Text = `"` + sb.String()
				return tok, nil
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(c)
		}
	}
}

func scanWhile(b *Buffer, pred func(byte) bool) string {
	var sb strings.Builder
	for {
		c, ok := b.peekByte()
		if !ok || !pred(c) {
			return sb.String()
		}
		_, _ = b.readByte()
		sb.WriteByte(c)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberPart(c byte) bool {
	return isDigit(c) || c == '.'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '/' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-' || c == '.' || c == ':'
}
