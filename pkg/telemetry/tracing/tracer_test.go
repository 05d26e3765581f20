package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"clockwork-hq/polc/pkg/config"
	"clockwork-hq/polc/pkg/lang"
)

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return NewWithProvider(provider), exporter
}

func attrs(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestNew(t *testing.T) {
	if _, err := New(nil, "test"); err == nil {
		t.Error("expected an error for a nil config")
	}

	tracer, err := New(&config.TracingConfig{Enabled: false}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tracer.Enabled() {
		t.Error("disabled config produced an enabled tracer")
	}

	_, span := tracer.Start(context.Background(), "noop")
	if span.SpanContext().IsValid() {
		t.Error("disabled tracer produced a valid span context")
	}
	span.End()

	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNew_Enabled(t *testing.T) {
	cfg := &config.TracingConfig{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		SampleRatio: 1,
		ServiceName: "polc-test",
	}

	tracer, err := New(cfg, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		// Nothing listens on the endpoint; only the shutdown path matters.
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = tracer.Shutdown(ctx)
	}()
	if !tracer.Enabled() {
		t.Error("expected an enabled tracer")
	}

	ctx, span := tracer.Start(context.Background(), "op")
	if TraceID(ctx) == "" {
		t.Error("expected a trace ID in the span context")
	}
	span.End()
}

func TestNilTracer(t *testing.T) {
	var tracer *Tracer

	ctx, span := tracer.StartParse(context.Background(), "site.pol", "check")
	EndParse(span, nil, nil)

	if TraceID(ctx) != "" {
		t.Error("nil tracer produced a trace ID")
	}
	if tracer.Enabled() {
		t.Error("nil tracer reports enabled")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1, "ParentBased{root:AlwaysOnSampler"},
		{0.5, "ParentBased{root:TraceIDRatioBased{0.5}"},
		{0, "ParentBased{root:TraceIDRatioBased{0}"},
	}
	for _, tt := range tests {
		got := newSampler(tt.ratio).Description()
		if len(got) < len(tt.want) || got[:len(tt.want)] != tt.want {
			t.Errorf("newSampler(%v) = %q, want prefix %q", tt.ratio, got, tt.want)
		}
	}
}

func TestParseSpan(t *testing.T) {
	tracer, exporter := newRecordingTracer(t)

	dir := t.TempDir()
	root := filepath.Join(dir, "site.pol")
	if err := os.WriteFile(root, []byte("include \"site.pol\";\ninclude \"missing.pol\";\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, span := tracer.StartParse(context.Background(), root, "check")
	_, result, err := lang.Run(root, nil)
	EndParse(span, result, err)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	got := spans[0]
	if got.Name != SpanParse {
		t.Errorf("span name = %q, want %q", got.Name, SpanParse)
	}
	if got.Status.Code != codes.Error {
		t.Errorf("status = %v, want Error", got.Status.Code)
	}
	if len(got.Events) == 0 || got.Events[0].Name != "exception" {
		t.Errorf("expected the parse error recorded as an exception event, got %+v", got.Events)
	}

	a := attrs(got.Attributes)
	if a[AttrRoot].AsString() != root || a[AttrTrigger].AsString() != "check" {
		t.Errorf("root/trigger attributes = %v/%v", a[AttrRoot], a[AttrTrigger])
	}
	if a[AttrWarnings].AsInt64() != 1 || a[AttrErrors].AsInt64() != 1 {
		t.Errorf("warnings/errors = %v/%v, want 1/1", a[AttrWarnings], a[AttrErrors])
	}
	if a[AttrSuccess].AsBool() {
		t.Error("success attribute = true")
	}
	if a[AttrSessionID].AsString() != result.SessionID {
		t.Errorf("session id = %v, want %s", a[AttrSessionID], result.SessionID)
	}
}

func TestSetStatus(t *testing.T) {
	tracer, exporter := newRecordingTracer(t)

	_, ok := tracer.Start(context.Background(), "ok")
	SetStatus(ok, nil)
	ok.End()

	_, failed := tracer.Start(context.Background(), "failed")
	SetStatus(failed, errors.New("boom"))
	failed.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Status.Code != codes.Ok {
		t.Errorf("ok span status = %v", spans[0].Status.Code)
	}
	if spans[1].Status.Code != codes.Error || spans[1].Status.Description != "boom" {
		t.Errorf("failed span status = %+v", spans[1].Status)
	}
}
