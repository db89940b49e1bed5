package observability

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey string

const (
	ctxKeyUpdateID ctxKey = "update_id"
)

// basic global logger, JSON to stdout.
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// WithUpdateID stores the chat transport's update id in the context.
func WithUpdateID(ctx context.Context, updateID int) context.Context {
	return context.WithValue(ctx, ctxKeyUpdateID, updateID)
}

// LoggerFromContext adds update_id if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	id, ok := ctx.Value(ctxKeyUpdateID).(int)
	if !ok {
		return logger
	}
	return logger.With("update_id", id)
}
