// Package ctxutil carries request scoped values, the trace id first of all,
// through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

const (
	// TraceIDKey is the context key and log field of the trace id.
	TraceIDKey = "trace_id"
	// TraceIDHeader carries the trace id over HTTP.
	TraceIDHeader = "X-Trace-ID"
)

type ctxKey string

// GetValue retrieves a value from the context.
func GetValue(ctx context.Context, key string) any {
	return ctx.Value(ctxKey(key))
}

// SetValue sets a value to the context.
func SetValue(ctx context.Context, key string, val any) context.Context {
	return context.WithValue(ctx, ctxKey(key), val)
}

// GetTraceID gets the trace id from ctx.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := GetValue(ctx, TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID returns ctx carrying traceID.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return SetValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}

// Detach returns a context that keeps the values of parent, including the
// trace id, but is never cancelled with it.
func Detach(parent context.Context) context.Context {
	return context.WithoutCancel(parent)
}
