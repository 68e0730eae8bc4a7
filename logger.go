package quadnav

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with navigator-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCell adds cell coordinates to the logger.
func (l *Logger) WithCell(x, y int) *Logger {
	return &Logger{
		Logger: l.Logger.With("x", x, "y", y),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSetWalkable logs a walkability change.
func (l *Logger) LogSetWalkable(ctx context.Context, x, y int, walkable bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "set walkable failed",
			"x", x,
			"y", y,
			"walkable", walkable,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "set walkable completed",
			"x", x,
			"y", y,
			"walkable", walkable,
		)
	}
}

// LogFindPath logs a path query.
func (l *Logger) LogFindPath(ctx context.Context, from, to Point, path Path, err error) {
	if err != nil {
		l.ErrorContext(ctx, "find path failed",
			"from", from,
			"to", to,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "find path completed",
			"from", from,
			"to", to,
			"found", path.Found(),
			"length", len(path.Points),
			"cost", path.Cost,
			"expanded", path.Expanded,
		)
	}
}

// LogBatch logs a batch path query.
func (l *Logger) LogBatch(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch find path completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.InfoContext(ctx, "batch find path completed",
			"count", count,
		)
	}
}

// LogCommit logs a snapshot commit.
func (l *Logger) LogCommit(ctx context.Context, manifest string, cells int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "commit failed",
			"cells", cells,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "commit completed",
			"manifest", manifest,
			"cells", cells,
		)
	}
}

// LogOpen logs restoring a navigator from a blob store.
func (l *Logger) LogOpen(ctx context.Context, manifest string, cells int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"manifest", manifest,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "open completed",
			"manifest", manifest,
			"cells", cells,
		)
	}
}
