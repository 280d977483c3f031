package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger writes human-oriented log lines through slog and tint.
// Used for --verbose when no log file is configured.
type ConsoleLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a logger writing to w. Colour is enabled only when
// w is a terminal.
func NewConsoleLogger(w io.Writer, level Level) *ConsoleLogger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      slogLevel(level),
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	})

	return &ConsoleLogger{logger: slog.New(handler)}
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.logger.DebugContext(ctx, msg, attrs(fields)...)
}

// Info logs an info message
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.logger.InfoContext(ctx, msg, attrs(fields)...)
}

// Warn logs a warning message
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.logger.WarnContext(ctx, msg, attrs(fields)...)
}

// Error logs an error message
func (l *ConsoleLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	args := attrs(fields)
	if err != nil {
		args = append(args, tint.Err(err))
	}
	l.logger.ErrorContext(ctx, msg, args...)
}

// WithFields returns a logger with additional fields
func (l *ConsoleLogger) WithFields(fields Fields) Logger {
	return &ConsoleLogger{logger: l.logger.With(attrs(fields)...)}
}

// Close does nothing; the writer is owned by the caller
func (l *ConsoleLogger) Close() error {
	return nil
}

func attrs(fields Fields) []any {
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return args
}
