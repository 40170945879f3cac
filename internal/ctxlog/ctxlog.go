// Package ctxlog carries a slog.Logger through context.Context so every
// stage of the loading pipeline logs through the same configured handler
// without threading a logger argument everywhere.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported so other packages cannot collide with our context key.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. Contexts that never
// passed through WithLogger fall back to the process-wide default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
