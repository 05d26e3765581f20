// Package tracing exports one OpenTelemetry span per parse session.
//
// Spans are named "polc.parse" and carry the root path, what triggered the
// parse, and the session counters (files, warnings, errors). A failed parse
// sets the span status to Error and records the parse error as an event.
// Export uses OTLP over gRPC; with tracing disabled every call is a no-op.
//
// Usage:
//
//	tracer, err := tracing.New(&cfg.Tracing, Version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.StartParse(ctx, root, "check")
//	doc, result, err := lang.Run(root, sessionCfg)
//	tracing.EndParse(span, result, err)
package tracing
