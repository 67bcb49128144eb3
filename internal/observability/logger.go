package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyProjectID ctxKey = "project_id"
	ctxKeyUserID    ctxKey = "user_id"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// Init replaces the global logger with a JSON logger at the given level
// ("debug", "info", "warn", "error"). Unknown levels mean info.
func Init(w io.Writer, level string) *slog.Logger {
	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
	logger.Store(l)
	return l
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Logger() *slog.Logger {
	return logger.Load()
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return Logger().With(kv...)
}

// WithRequestID stores a request_id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// WithProject stores the project and user a generation runs for.
func WithProject(ctx context.Context, projectID, userID string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyProjectID, projectID)
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// LoggerFromContext adds request_id, project_id and user_id if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	l := Logger()
	for _, key := range []ctxKey{ctxKeyRequestID, ctxKeyProjectID, ctxKeyUserID} {
		if v, _ := ctx.Value(key).(string); v != "" {
			l = l.With(string(key), v)
		}
	}
	return l
}
