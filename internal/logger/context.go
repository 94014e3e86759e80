package logger

import (
	"context"

	"go.uber.org/zap"
)

// Request-scoped loggers travel in the context so handlers and use cases
// log with the request id attached.

type contextKey struct{}

var nop = zap.NewNop()

// ContextWithLogger returns a child context carrying the logger.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger carried by ctx, or a no-op logger when
// the context has none (tests, background jobs).
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(contextKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return nop
}
