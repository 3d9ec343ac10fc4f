package logging

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type traceIDKey struct{}

// TraceIDField is the log field carrying the trace id.
const TraceIDField = "trace_id"

// NewTraceID returns a fresh ULID string.
func NewTraceID() string {
	return ulid.Make().String()
}

// ContextWithTraceID stores traceID on ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace id on ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// GetOrGenerateTraceID returns the trace id on ctx, generating one if
// absent.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return NewTraceID()
}

// traceHook adds the context trace id to events logged with .Ctx(ctx).
type traceHook struct{}

func (traceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id := TraceIDFromContext(e.GetCtx()); id != "" {
		e.Str(TraceIDField, id)
	}
}
