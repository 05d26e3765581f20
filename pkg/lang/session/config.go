package session

import (
	"io"
	"log/slog"
	"time"

	"clockwork-hq/polc/pkg/lang/scanner"
	"clockwork-hq/polc/pkg/lang/seen"
)

// Engine is the scanning engine driven by the include controller.
// Buffers must be pushed and popped in strict stack order: the engine
// keys its stack on call order only.
type Engine interface {
	// CreateBuffer wraps an open file in a new, unpushed buffer.
	CreateBuffer(r io.Reader, size int) *scanner.Buffer

	// PushBuffer makes b the active buffer.
	PushBuffer(b *scanner.Buffer)

	// PopBuffer discards the active buffer and resumes the one below.
	PopBuffer()

	// LineNumber returns the line number in the active buffer.
	LineNumber() int

	// Destroy releases the engine's state.
	Destroy()
}

// EngineFactory creates the reentrant engine state for a session.
// extra is the session's *Context.
type EngineFactory func(extra any) Engine

// Grammar drives a parse. It calls ctx.Include when it recognizes an
// include directive and ctx.IncludeDone when the engine reports io.EOF on
// the active buffer. A Finished status means there is no more input.
type Grammar interface {
	Parse(ctx *Context) error
}

// GrammarFunc adapts a function to the Grammar interface.
type GrammarFunc func(ctx *Context) error

// Parse implements Grammar.
func (f GrammarFunc) Parse(ctx *Context) error {
	return f(ctx)
}

// Recorder receives session metrics. The telemetry/metrics package
// provides the Prometheus implementation.
type Recorder interface {
	RecordFileOpened()
	RecordSkipped(reason string)
	RecordDiagnostic(severity string)
	RecordGlob(outcome string, matches int)
	RecordSession(success bool, duration time.Duration, files int)
}

type noopRecorder struct{}

func (noopRecorder) RecordFileOpened()                      {}
func (noopRecorder) RecordSkipped(string)                   {}
func (noopRecorder) RecordDiagnostic(string)                {}
func (noopRecorder) RecordGlob(string, int)                 {}
func (noopRecorder) RecordSession(bool, time.Duration, int) {}

// Default values for Config fields.
const (
	DefaultBufferSize       = scanner.DefaultBufferSize
	DefaultMaxMessageLength = 256
	DefaultMaxGlobMatches   = -1
)

// Config controls a parse session. The zero value of every field selects
// its default.
type Config struct {
	// BufferSize is the read buffer size of each scanner buffer.
	BufferSize int

	// MaxMessageLength bounds rendered diagnostic messages, in bytes,
	// including the terminator slot of the traditional fixed buffer.
	MaxMessageLength int

	// MaxGlobMatches bounds a single include pattern's expansion.
	// Negative means unlimited, which is also the default.
	MaxGlobMatches int

	// UnmarkedDirectories disables the trailing separator on directory
	// matches in glob expansion.
	UnmarkedDirectories bool

	// FS is the filesystem boundary. Defaults to seen.OS.
	FS seen.FS

	// NewEngine creates the scanning engine. Defaults to scanner.New.
	NewEngine EngineFactory

	// Logger receives diagnostics and session events. Defaults to slog.Default().
	Logger *slog.Logger

	// Recorder receives metrics. Defaults to a no-op.
	Recorder Recorder
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	return (&Config{}).withDefaults()
}

func (c *Config) withDefaults() *Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.BufferSize <= 0 {
		out.BufferSize = DefaultBufferSize
	}
	if out.MaxMessageLength <= 0 {
		out.MaxMessageLength = DefaultMaxMessageLength
	}
	if out.MaxGlobMatches == 0 {
		out.MaxGlobMatches = DefaultMaxGlobMatches
	}
	if out.FS == nil {
		out.FS = seen.OS{}
	}
	if out.NewEngine == nil {
		out.NewEngine = func(extra any) Engine {
			return scanner.New(extra)
		}
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Recorder == nil {
		out.Recorder = noopRecorder{}
	}
	return &out
}
