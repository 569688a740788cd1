package vecgraph

import (
	"context"
	"log/slog"
	"os"

	"github.com/vecgraph/vecgraph/core"
)

// Logger wraps slog.Logger with graph-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithNode adds a node field to the logger (useful for tagging operations).
func (l *Logger) WithNode(node core.ElementID) *Logger {
	return &Logger{
		Logger: l.Logger.With("node", uint64(node)),
	}
}

// LogAddEmptyNode logs an isolated-node registration.
func (l *Logger) LogAddEmptyNode(ctx context.Context, node core.ElementID, created bool) {
	l.DebugContext(ctx, "empty node added",
		"node", uint64(node),
		"created", created,
	)
}

// LogAddNode logs a node registration with its neighbor links.
func (l *Logger) LogAddNode(ctx context.Context, node core.ElementID, linked int, created bool) {
	l.DebugContext(ctx, "node added",
		"node", uint64(node),
		"linked", linked,
		"created", created,
	)
}

// LogAddEdge logs a single symmetric edge insert.
func (l *Logger) LogAddEdge(ctx context.Context, a, b core.ElementID) {
	l.DebugContext(ctx, "edge added",
		"a", uint64(a),
		"b", uint64(b),
	)
}

// LogSetNode logs a neighborhood replacement.
func (l *Logger) LogSetNode(ctx context.Context, node core.ElementID, degree int) {
	l.DebugContext(ctx, "node set",
		"node", uint64(node),
		"degree", degree,
	)
}

// LogRemoveNode logs a node removal.
func (l *Logger) LogRemoveNode(ctx context.Context, node core.ElementID, found bool) {
	l.DebugContext(ctx, "node removed",
		"node", uint64(node),
		"found", found,
	)
}

// LogSnapshot logs a snapshot save.
func (l *Logger) LogSnapshot(ctx context.Context, nodes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"nodes", nodes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"nodes", nodes,
		)
	}
}

// LogRestore logs a snapshot load.
func (l *Logger) LogRestore(ctx context.Context, nodes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "restore failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "restore completed",
			"nodes", nodes,
		)
	}
}
