package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"clockwork-hq/polc/pkg/config"
	"clockwork-hq/polc/pkg/history"
	"clockwork-hq/polc/pkg/lang/session"
	"clockwork-hq/polc/pkg/telemetry/tracing"
)

type fakeReporter struct {
	mu       sync.Mutex
	triggers []string
	watched  int
}

func (f *fakeReporter) RecordReparse(trigger string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers = append(f.triggers, trigger)
}

func (f *fakeReporter) SetWatchedFiles(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watched = n
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("expected an error without a root")
	}
	if _, err := New(Options{Root: "x.pol", Schedule: "sometimes"}); err == nil {
		t.Error("expected an error for an invalid schedule")
	}
}

func TestWatcher_Reparse(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "site.pol")
	inc := filepath.Join(dir, "base.pol")
	writeFile(t, root, "include \"base.pol\";\nname site;\n")
	writeFile(t, inc, "user www;\n")

	reporter := &fakeReporter{}
	w, err := New(Options{Root: root, Reporter: reporter})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.files.Close()

	out := w.Reparse(context.Background(), TriggerInitial)
	if out.Err != nil {
		t.Fatalf("Reparse() error = %v", out.Err)
	}
	if got := len(out.Document.Statements); got != 2 {
		t.Errorf("statements = %d, want 2", got)
	}
	if reporter.watched != 2 {
		t.Errorf("watched files = %d, want 2", reporter.watched)
	}

	// Dropping the include shrinks the followed set.
	writeFile(t, root, "name site;\n")
	w.Reparse(context.Background(), TriggerSchedule)
	if got := w.Files(); len(got) != 1 || got[0] != root {
		t.Errorf("Files() = %v, want [%s]", got, root)
	}
	if last := w.Last(); last.Trigger != TriggerSchedule {
		t.Errorf("Last().Trigger = %q, want %q", last.Trigger, TriggerSchedule)
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "site.pol")

	w, err := New(Options{Root: root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.files.Close()

	out := w.Reparse(context.Background(), TriggerInitial)
	if !errors.Is(out.Err, session.ErrRootUnavailable) {
		t.Errorf("Err = %v, want ErrRootUnavailable", out.Err)
	}
	if out.Result != nil {
		t.Error("expected no result for a missing root")
	}
	// The root is still followed so that creating it triggers a parse.
	if got := w.Files(); len(got) != 1 || got[0] != root {
		t.Errorf("Files() = %v, want [%s]", got, root)
	}
}

func TestWatcher_RecordsHistory(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "site.pol")
	writeFile(t, root, "name site;\n")

	store, err := history.Open(&config.HistoryConfig{
		Driver:       "sqlite",
		Path:         filepath.Join(dir, "history.db"),
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("history.Open() error = %v", err)
	}
	defer store.Close()

	w, err := New(Options{Root: root, History: store})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.files.Close()

	w.Reparse(context.Background(), TriggerInitial)
	w.Reparse(context.Background(), TriggerChange)

	records, err := store.List(context.Background(), history.Query{Root: root})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "site.pol")
	writeFile(t, root, "include \"conf.d/*.pol\";\n")
	writeFile(t, filepath.Join(dir, "conf.d", "a.pol"), "a 1;\n")

	outcomes := make(chan Outcome, 8)
	reporter := &fakeReporter{}
	w, err := New(Options{
		Root:      root,
		Debounce:  20 * time.Millisecond,
		Session:   &session.Config{},
		Reporter:  reporter,
		OnOutcome: func(o Outcome) { outcomes <- o },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	next := func() Outcome {
		t.Helper()
		select {
		case o := <-outcomes:
			return o
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for a parse")
			return Outcome{}
		}
	}

	if o := next(); o.Trigger != TriggerInitial || len(o.Result.Files) != 2 {
		t.Fatalf("initial outcome = %v", o)
	}

	// Give the event loop a moment to start reading.
	time.Sleep(50 * time.Millisecond)

	// A new file matching the include glob is picked up.
	writeFile(t, filepath.Join(dir, "conf.d", "b.pol"), "b 2;\n")

	var o Outcome
	for o = next(); len(o.Result.Files) != 3; o = next() {
	}
	if o.Trigger != TriggerChange {
		t.Errorf("Trigger = %q, want %q", o.Trigger, TriggerChange)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	if reporter.triggers[0] != TriggerInitial {
		t.Errorf("first trigger = %q, want %q", reporter.triggers[0], TriggerInitial)
	}
	if reporter.watched != 3 {
		t.Errorf("watched = %d, want 3", reporter.watched)
	}
}

func TestWatcher_Ready(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "site.pol")
	writeFile(t, root, "include \"missing.pol\";\n")

	w, err := New(Options{Root: root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.files.Close()

	ctx := context.Background()
	if err := w.Ready(ctx); err == nil {
		t.Error("Ready() before any parse should fail")
	}

	w.Reparse(ctx, TriggerInitial)
	if err := w.Ready(ctx); !errors.Is(err, session.ErrParseFailed) {
		t.Errorf("Ready() = %v, want ErrParseFailed", err)
	}

	writeFile(t, root, "name site;\n")
	w.Reparse(ctx, TriggerChange)
	if err := w.Ready(ctx); err != nil {
		t.Errorf("Ready() after a clean parse = %v", err)
	}
}

func TestWatcher_TracesEachParse(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer provider.Shutdown(context.Background())

	root := filepath.Join(t.TempDir(), "site.pol")
	writeFile(t, root, "name site;\n")

	w, err := New(Options{Root: root, Tracer: tracing.NewWithProvider(provider)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.files.Close()

	w.Reparse(context.Background(), TriggerInitial)
	w.Reparse(context.Background(), TriggerSchedule)

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	for i, want := range []string{TriggerInitial, TriggerSchedule} {
		var trigger string
		for _, kv := range spans[i].Attributes {
			if kv.Key == tracing.AttrTrigger {
				trigger = kv.Value.AsString()
			}
		}
		if spans[i].Name != tracing.SpanParse || trigger != want {
			t.Errorf("span %d = %s trigger %q, want %s trigger %q", i, spans[i].Name, trigger, tracing.SpanParse, want)
		}
	}
}
