package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"clockwork-hq/polc/pkg/lang/session"
)

// SpanParse is the name of the span covering one parse session.
const SpanParse = "polc.parse"

// Attribute keys set on parse spans.
const (
	AttrRoot      = attribute.Key("polc.root")
	AttrTrigger   = attribute.Key("polc.trigger")
	AttrSessionID = attribute.Key("polc.session.id")
	AttrFiles     = attribute.Key("polc.session.files")
	AttrWarnings  = attribute.Key("polc.session.warnings")
	AttrErrors    = attribute.Key("polc.session.errors")
	AttrSuccess   = attribute.Key("polc.session.success")
)

// StartParse opens the span for parsing root. trigger says why the parse
// ran: the command name for one-shot parses, or the watch trigger.
func (t *Tracer) StartParse(ctx context.Context, root, trigger string) (context.Context, trace.Span) {
	return t.Start(ctx, SpanParse,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(AttrRoot.String(root), AttrTrigger.String(trigger)),
	)
}

// SessionAttributes describes a finished session.
func SessionAttributes(result *session.Result) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrSessionID.String(result.SessionID),
		AttrFiles.Int(len(result.Files)),
		AttrWarnings.Int64(int64(result.Warnings)),
		AttrErrors.Int64(int64(result.Errors)),
		AttrSuccess.Bool(result.Success()),
	}
}

// EndParse annotates span with the session outcome and ends it. result is
// nil when the root could not be read.
func EndParse(span trace.Span, result *session.Result, err error) {
	if result != nil {
		span.SetAttributes(SessionAttributes(result)...)
	}
	SetStatus(span, err)
	span.End()
}
