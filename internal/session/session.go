// Package session tags one console run with an id that follows it through
// the context and into log lines.
package session

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Start returns a context carrying a fresh session id as its trace id.
func Start(ctx context.Context) (context.Context, uuid.UUID) {
	id := uuid.New()

	var spanID trace.SpanID

	copy(spanID[:], id[len(id)-len(spanID):])

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID(id),
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	return trace.ContextWithSpanContext(ctx, sc), id
}

// TraceID returns the session id stored in ctx, or an empty string.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}

	if id := uuid.UUID(sc.TraceID()); id != uuid.Nil {
		return id.String()
	}

	return ""
}
