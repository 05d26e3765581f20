package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"clockwork-hq/polc/pkg/history"
	"clockwork-hq/polc/pkg/lang"
	"clockwork-hq/polc/pkg/lang/ast"
	"clockwork-hq/polc/pkg/lang/session"
	"clockwork-hq/polc/pkg/telemetry/tracing"
)

// Re-parse triggers.
const (
	TriggerInitial  = "initial"
	TriggerChange   = "change"
	TriggerSchedule = "schedule"
)

// Reporter receives watch metrics. *metrics.Collector implements it.
type Reporter interface {
	RecordReparse(trigger string)
	SetWatchedFiles(n int)
}

type noopReporter struct{}

func (noopReporter) RecordReparse(string) {}
func (noopReporter) SetWatchedFiles(int)  {}

// Outcome is the product of one parse.
type Outcome struct {
	Trigger  string
	Document *ast.Document
	Result   *session.Result // nil when the root could not be inspected
	Err      error
}

// Options configures a Watcher.
type Options struct {
	// Root is the policy file to parse.
	Root string

	// Session configures each parse session. May be nil.
	Session *session.Config

	// Debounce coalesces bursts of file events.
	Debounce time.Duration

	// Schedule, when set, also re-parses on this cron expression.
	Schedule string

	// History, when set, receives a record of every parse.
	History *history.Store

	// Pruner and PruneSchedule enable periodic history pruning.
	Pruner        *history.Pruner
	PruneSchedule string

	// Reporter receives re-parse metrics. May be nil.
	Reporter Reporter

	// Tracer wraps each parse in a span. May be nil.
	Tracer *tracing.Tracer

	// OnOutcome is called after every parse, serialized.
	OnOutcome func(Outcome)

	Logger *slog.Logger
}

// Watcher re-parses a policy tree whenever one of its files changes.
type Watcher struct {
	opts      Options
	files     *FileWatcher
	scheduler *Scheduler
	reporter  Reporter
	logger    *slog.Logger

	// mu serializes parses from the event and cron goroutines.
	mu   sync.Mutex
	last Outcome
}

// New creates a Watcher. Call Run to start it.
func New(opts Options) (*Watcher, error) {
	if opts.Root == "" {
		return nil, errors.New("watch: root path is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "watch", "root", opts.Root)

	files, err := NewFileWatcher(opts.Debounce, logger)
	if err != nil {
		return nil, err
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = noopReporter{}
	}

	w := &Watcher{
		opts:      opts,
		files:     files,
		scheduler: NewScheduler(logger),
		reporter:  reporter,
		logger:    logger,
	}

	if err := w.scheduler.Add("reparse", opts.Schedule, func() {
		w.Reparse(context.Background(), TriggerSchedule)
	}); err != nil {
		files.Close()
		return nil, err
	}

	if opts.Pruner != nil {
		if err := w.scheduler.Add("prune", opts.PruneSchedule, func() {
			if _, err := opts.Pruner.Prune(context.Background()); err != nil {
				logger.Error("scheduled history prune failed", "error", err)
			}
		}); err != nil {
			files.Close()
			return nil, err
		}
	}

	return w, nil
}

// Run parses once, then re-parses on every change until ctx is cancelled.
// The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.files.Close()

	w.Reparse(ctx, TriggerInitial)

	w.scheduler.Start(ctx)
	defer w.scheduler.Stop()

	w.logger.Info("watching for changes",
		"files", len(w.files.Files()),
		"debounce_ms", w.opts.Debounce.Milliseconds(),
	)

	return w.files.Run(ctx, func(path string) {
		w.logger.Info("change detected, re-parsing", "file", path)
		w.Reparse(ctx, TriggerChange)
	})
}

// Reparse parses the root now and refreshes the followed files.
func (w *Watcher) Reparse(ctx context.Context, trigger string) Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, span := w.opts.Tracer.StartParse(ctx, w.opts.Root, trigger)
	doc, result, err := lang.Run(w.opts.Root, w.opts.Session)
	tracing.EndParse(span, result, err)
	out := Outcome{Trigger: trigger, Document: doc, Result: result, Err: err}
	w.reporter.RecordReparse(trigger)

	// Follow the root even when it is missing, so its creation is seen.
	followed := []string{w.opts.Root}
	if result != nil {
		followed = append(followed, result.Files...)
	}
	n, ferr := w.files.SetFiles(followed)
	if ferr != nil {
		w.logger.Warn("some files cannot be watched", "error", ferr)
	}
	w.reporter.SetWatchedFiles(n)

	if w.opts.History != nil && result != nil {
		if herr := w.opts.History.Save(ctx, history.NewRecord(result)); herr != nil {
			w.logger.Error("failed to record parse", "error", herr)
		}
	}

	if result != nil {
		w.logger.Debug("parse complete",
			"trigger", trigger,
			"files", len(result.Files),
			"warnings", result.Warnings,
			"errors", result.Errors,
		)
	} else {
		w.logger.Warn("root unavailable", "trigger", trigger, "error", err)
	}

	w.last = out
	if w.opts.OnOutcome != nil {
		w.opts.OnOutcome(out)
	}
	return out
}

// Last returns the most recent outcome.
func (w *Watcher) Last() Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Ready returns nil once the most recent parse succeeded.
func (w *Watcher) Ready(ctx context.Context) error {
	last := w.Last()
	switch {
	case last.Trigger == "":
		return errors.New("no parse has completed yet")
	case last.Err != nil:
		return last.Err
	}
	return nil
}

// Files returns the files currently followed.
func (w *Watcher) Files() []string {
	return w.files.Files()
}

// NextScheduledRun returns when the periodic re-parse runs next, or nil.
func (w *Watcher) NextScheduledRun() *time.Time {
	return w.scheduler.NextRun("reparse")
}

func (o Outcome) String() string {
	if o.Result == nil {
		return fmt.Sprintf("%s: %v", o.Trigger, o.Err)
	}
	return fmt.Sprintf("%s: %d files, %d warnings, %d errors",
		o.Trigger, len(o.Result.Files), o.Result.Warnings, o.Result.Errors)
}
