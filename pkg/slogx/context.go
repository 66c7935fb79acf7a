package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithContext attaches a logger to the context for downstream handlers.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the contextual logger, or the default logger when the
// context carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
