package corebench

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/corebench/compress"
)

// Logger wraps slog.Logger with benchmark-specific context.
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

// WithContextID adds a benchmark context id field to the logger.
func (l *Logger) WithContextID(id int) *Logger {
	return &Logger{
		Logger: l.Logger.With("context", id),
	}
}

// WithRunID adds a run id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// LogInit logs the initialization of one benchmark context.
func (l *Logger) LogInit(ctx context.Context, size int, algorithms string, method MemoryMethod, err error) {
	if err != nil {
		l.ErrorContext(ctx, "context init failed",
			"size", size,
			"algorithms", algorithms,
			"memory", method.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "context initialized",
			"size", size,
			"algorithms", algorithms,
			"memory", method.String(),
		)
	}
}

// LogCalibration logs one calibration probe.
func (l *Logger) LogCalibration(ctx context.Context, iterations uint32, elapsed time.Duration) {
	l.InfoContext(ctx, "calibrating iterations",
		"iterations", iterations,
		"elapsed", elapsed,
	)
}

// LogValidation logs the outcome of checksum validation.
func (l *Logger) LogValidation(ctx context.Context, seedCRC uint16, known string, errors int) {
	switch {
	case errors > 0:
		l.WarnContext(ctx, "validation failed",
			"seedcrc", formatCRC(seedCRC),
			"known", known,
			"errors", errors,
		)
	case known == "":
		l.InfoContext(ctx, "seeds not validated",
			"seedcrc", formatCRC(seedCRC),
		)
	default:
		l.InfoContext(ctx, "validation passed",
			"seedcrc", formatCRC(seedCRC),
			"known", known,
		)
	}
}

// LogArchive logs a report archive operation.
func (l *Logger) LogArchive(ctx context.Context, name string, kind compress.Kind, err error) {
	if err != nil {
		l.ErrorContext(ctx, "archive failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "report archived",
			"name", name,
			"compression", kind.String(),
		)
	}
}
