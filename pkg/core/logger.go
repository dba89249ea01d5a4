package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// SlogLogger implements Logger on top of a structured slog.Logger
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps an existing slog.Logger
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// NewDefaultLogger creates a text logger writing to stderr
func NewDefaultLogger() Logger {
	return NewTextLogger(os.Stderr, slog.LevelInfo)
}

// NewTextLogger creates a text logger writing to w at the given level
func NewTextLogger(w io.Writer, level slog.Level) *SlogLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(handler))
}

// Printf formats the message and emits it at info level
func (l *SlogLogger) Printf(format string, args ...interface{}) {
	l.logger.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Slog returns the underlying structured logger
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
