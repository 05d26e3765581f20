package session

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	langerrors "clockwork-hq/polc/pkg/lang/errors"
	"clockwork-hq/polc/pkg/lang/glob"
	"clockwork-hq/polc/pkg/lang/seen"
)

// frame is one entry of the include chain.
type frame struct {
	path string
	id   seen.Identity
}

// Context carries all state of one parse session. It is handed to the
// grammar and threaded through every controller and diagnostic call.
// A Context belongs to the goroutine running the session.
type Context struct {
	// Data is the caller's user data. The grammar mutates it; the session
	// only passes it through.
	Data any

	id       string
	cfg      *Config
	engine   Engine
	fs       seen.FS
	expander *glob.Expander
	seen     *seen.Registry
	logger   *slog.Logger
	recorder Recorder

	frames   []frame
	current  string
	visited  []string
	finished bool
	torndown bool

	warnings    uint
	errors      uint
	diagnostics *langerrors.ErrorList
}

func newContext(data any, cfg *Config) *Context {
	id := uuid.NewString()

	expander := glob.New(cfg.MaxGlobMatches)
	if cfg.MaxGlobMatches < 0 {
		expander.MaxMatches = 0
	}
	expander.Mark = !cfg.UnmarkedDirectories

	ctx := &Context{
		Data:        data,
		id:          id,
		cfg:         cfg,
		fs:          cfg.FS,
		expander:    expander,
		seen:        seen.NewRegistry(),
		logger:      cfg.Logger.With("component", "lang.session", "session_id", id),
		recorder:    cfg.Recorder,
		frames:      make([]frame, 0, 4),
		diagnostics: langerrors.NewErrorList(),
	}
	ctx.engine = cfg.NewEngine(ctx)
	return ctx
}

// ID returns the session id.
func (c *Context) ID() string {
	return c.id
}

// Engine returns the scanning engine. Grammars type-assert it to the token
// interface they need.
func (c *Context) Engine() Engine {
	return c.engine
}

// Logger returns the session logger.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// CurrentFile returns the name of the file being scanned.
func (c *Context) CurrentFile() string {
	return c.current
}

// Line returns the engine's current line number.
func (c *Context) Line() int {
	return c.engine.LineNumber()
}

// FileStack returns a copy of the include chain, root first.
func (c *Context) FileStack() []string {
	stack := make([]string, len(c.frames))
	for i, f := range c.frames {
		stack[i] = f.path
	}
	return stack
}

// Depth returns the length of the include chain.
func (c *Context) Depth() int {
	return len(c.frames)
}

// Finished reports whether IncludeDone has exhausted the include chain.
func (c *Context) Finished() bool {
	return c.finished
}

// Visited returns every path opened during the session, in open order.
func (c *Context) Visited() []string {
	return slices.Clone(c.visited)
}

// Warnings returns the number of warnings recorded.
func (c *Context) Warnings() uint {
	return c.warnings
}

// Errors returns the number of errors recorded.
func (c *Context) Errors() uint {
	return c.errors
}

// Diagnostics returns every warning and error recorded, in order.
func (c *Context) Diagnostics() []*langerrors.Error {
	return slices.Clone(c.diagnostics.Errors)
}

// OpenFiles returns the number of registered files whose handle is still open.
func (c *Context) OpenFiles() int {
	return c.seen.Open()
}

// teardown destroys the engine and closes anything still open. It runs
// exactly once per session, on every exit path.
func (c *Context) teardown() {
	if c.torndown {
		return
	}
	c.torndown = true

	c.engine.Destroy()
	c.frames = nil

	if n := c.seen.CloseAll(); n > 0 {
		c.logger.Debug("Closed files left open at teardown", "count", n)
	}
}
