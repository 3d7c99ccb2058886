package logger

import (
	"context"
	"log/slog"
)

type ctxLogger struct{}

// With derives a logger carrying the given fields and stores it on the
// context, so everything downstream logs with the same request-scoped fields.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxLogger{}, From(ctx).With(fields...))
}

// From returns the context's logger, falling back to the process logger when
// none was attached.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLogger{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
