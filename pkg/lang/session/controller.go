package session

import (
	"errors"
	"fmt"
	"io/fs"

	langerrors "clockwork-hq/polc/pkg/lang/errors"
	"clockwork-hq/polc/pkg/lang/glob"
	"clockwork-hq/polc/pkg/lang/pathspec"
	"clockwork-hq/polc/pkg/lang/seen"
)

var (
	// ErrRootUnavailable is returned by OpenRoot when the root file could
	// not be opened. The reason is recorded as a diagnostic.
	ErrRootUnavailable = errors.New("root file unavailable")

	// ErrRootAlreadyOpen is returned by OpenRoot on a context that already
	// opened its root.
	ErrRootAlreadyOpen = errors.New("root file already open")
)

// Status is returned by IncludeDone.
type Status int

const (
	// Continue means the engine resumed the including file.
	Continue Status = iota
	// Finished means the root file is done and there is no more input.
	Finished
)

// String returns the status name.
func (s Status) String() string {
	if s == Finished {
		return "finished"
	}
	return "continue"
}

// Skip reasons reported to the metrics recorder.
const (
	skipStat        = "stat"
	skipNotRegular  = "not_regular"
	skipOpen        = "open"
	skipAlreadySeen = "already_seen"
)

// OpenRoot opens the root file of the session.
func (c *Context) OpenRoot(path string) error {
	if c.finished || len(c.frames) > 0 || len(c.visited) > 0 {
		return ErrRootAlreadyOpen
	}
	if !c.processFile(path) {
		return fmt.Errorf("%w: %s", ErrRootUnavailable, path)
	}
	return nil
}

// Include handles an include directive. spec is resolved against the
// directory of the current file and expanded as a glob. Matches are pushed
// in descending order so they are scanned ascending. A pattern that
// matches nothing is opened literally, unresolved, so a missing file is
// reported under the name the user wrote.
//
// Failures are recorded as diagnostics; parsing continues either way.
func (c *Context) Include(spec string) {
	full := pathspec.Resolve(c.current, spec)
	exp := c.expander.Expand(full)
	c.recorder.RecordGlob(exp.Outcome.String(), len(exp.Paths))

	switch exp.Outcome {
	case glob.NoMatch:
		if glob.HasMeta(spec) {
			c.logger.Debug("Glob matched nothing, including literally", "pattern", full, "spec", spec)
		}
		c.processFile(spec)
	case glob.NoSpace:
		c.errorf(langerrors.ErrorTypeGlobNoSpace, "out of memory in glob expansion of %s", full)
	case glob.Aborted:
		c.errorf(langerrors.ErrorTypeGlobAborted, "read aborted during glob expansion of %s", full)
	case glob.Matched:
		c.logger.Debug("Include expanded", "pattern", full, "matches", len(exp.Paths))
		for _, path := range glob.PushOrder(exp.Paths) {
			c.processFile(path)
		}
	}
}

// processFile opens path and pushes it onto the engine, unless it is not
// a regular file or was already seen this session. It reports whether the
// file was pushed.
func (c *Context) processFile(path string) bool {
	id, err := c.fs.Identify(path)
	if err != nil {
		var statErr *seen.StatError
		switch {
		case errors.Is(err, seen.ErrNotRegular):
			c.errorf(langerrors.ErrorTypeNotRegular, "can't open %s: not a regular file", path)
			c.recorder.RecordSkipped(skipNotRegular)
		case errors.As(err, &statErr):
			c.errorf(langerrors.ErrorTypeStat, "can't stat %s: %v", path, statErr.Err)
			c.recorder.RecordSkipped(skipStat)
		default:
			c.errorf(langerrors.ErrorTypeStat, "can't stat %s: %v", path, err)
			c.recorder.RecordSkipped(skipStat)
		}
		return false
	}

	if c.seen.IsSeen(id) {
		c.warnf(langerrors.ErrorTypeAlreadySeen, "skipping %s (already seen)", path)
		c.recorder.RecordSkipped(skipAlreadySeen)
		return false
	}

	handle, err := c.fs.Open(path)
	if err != nil {
		c.errorf(langerrors.ErrorTypeOpen, "can't open %s: %v", path, unwrapPathError(err))
		c.recorder.RecordSkipped(skipOpen)
		return false
	}

	// Registered before the engine sees it, so teardown closes it on any
	// later failure.
	c.seen.Register(id, handle)

	buf := c.engine.CreateBuffer(handle, c.cfg.BufferSize)
	c.engine.PushBuffer(buf)

	c.frames = append(c.frames, frame{path: path, id: id})
	c.current = path
	c.visited = append(c.visited, path)
	c.recorder.RecordFileOpened()

	c.logger.Debug("File opened", "file", path, "depth", len(c.frames))
	return true
}

// IncludeDone is called by the grammar when the engine reaches the end of
// the active buffer. It closes the current file and resumes the including
// file, or returns Finished when the root file is done.
//
// The name of the root file stays current after Finished so diagnostics
// raised at end of input are attributed to it. Calling IncludeDone again
// after Finished records an error and returns Finished.
func (c *Context) IncludeDone() Status {
	if len(c.frames) == 0 {
		c.errorf(langerrors.ErrorTypeIncludeOrder, "end of include with no file open")
		return Finished
	}

	top := c.frames[len(c.frames)-1]
	if top.path != c.current {
		c.errorf(langerrors.ErrorTypeIncludeOrder, "current file %s is not the innermost include %s", c.current, top.path)
	}

	if err := c.seen.CloseLatest(top.id); err != nil {
		var orderErr *seen.OrderError
		switch {
		case errors.As(err, &orderErr):
			c.errorf(langerrors.ErrorTypeIncludeOrder, "%v", orderErr)
		case errors.Is(err, seen.ErrNothingOpen):
			c.errorf(langerrors.ErrorTypeIncludeOrder, "%s is not open", top.path)
		default:
			c.logger.Debug("Close failed", "file", top.path, "error", err)
		}
	}

	c.frames = c.frames[:len(c.frames)-1]
	if len(c.frames) == 0 {
		c.finished = true
		c.logger.Debug("Include chain finished", "file", top.path)
		return Finished
	}

	c.engine.PopBuffer()
	c.current = c.frames[len(c.frames)-1].path
	return Continue
}

func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
