// File: speechrules/prefs/logger.go
package prefs

import (
	"log/slog"
	"os"
)

// Logger receives the diagnostics emitted for recoverable anomalies: missing
// files, unparseable documents, schema violations, coercion failures. Fatal
// conditions are returned as errors instead and never pass through here.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// defaultLogger wraps slog with an adjustable level.
type defaultLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

// NewDefaultLogger returns a Logger that writes JSON to stderr at Info level.
func NewDefaultLogger() Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &defaultLogger{
		logger: slog.New(handler),
		level:  level,
	}
}

func (l *defaultLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *defaultLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *defaultLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *defaultLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// nopLogger discards everything.
type nopLogger struct{}

// NopLogger returns a Logger that drops all diagnostics.
func NopLogger() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
