package render

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var slogCtxKey = ctxKey{}

// LoggingContext returns a copy of ctx carrying logger. Render and anything
// else calling LoggerFromContext will log through it.
func LoggingContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, slogCtxKey, logger)
}

// LoggerFromContext returns the logger stored by LoggingContext. Without one,
// it returns a logger that discards everything.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(slogCtxKey).(*slog.Logger)
	if !ok || logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
