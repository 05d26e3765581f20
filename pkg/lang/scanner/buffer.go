package scanner

import (
	"bufio"
	"io"
)

// DefaultBufferSize matches the traditional scanner read buffer size.
const DefaultBufferSize = 16384

// Buffer is one input source on the scanner's stack: a buffered reader and
// the read position within it. Each buffer keeps its own line counter so
// resuming a parent file resumes its line numbering too.
type Buffer struct {
	r      *bufio.Reader
	line   int
	column int
	eof    bool
}

// NewBuffer wraps r in a buffer of the given size.
// A size below 16 bytes falls back to DefaultBufferSize.
func NewBuffer(r io.Reader, size int) *Buffer {
	if size < 16 {
		size = DefaultBufferSize
	}
	return &Buffer{
		r:    bufio.NewReaderSize(r, size),
		line: 1,
	}
}

// Line returns the current line number (1-based).
func (b *Buffer) Line() int {
	return b.line
}

// Exhausted reports whether the buffer has reached end of input.
func (b *Buffer) Exhausted() bool {
	return b.eof
}

func (b *Buffer) readByte() (byte, error) {
	c, err := b.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			b.eof = true
		}
		return 0, err
	}
	if c == '\n' {
		b.line++
		b.column = 0
	} else {
		b.column++
	}
	return c, nil
}

func (b *Buffer) peekByte() (byte, bool) {
	p, err := b.r.Peek(1)
	if err != nil || len(p) == 0 {
		return 0, false
	}
	return p[0], true
}
