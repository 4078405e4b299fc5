// Package logx holds the module-wide logger. The default logger is
// slog.Default(); collaborators may swap it with SetLogger.
package logx

import (
	"log/slog"
	"sync/atomic"
)

// Logger is the minimal structured logging surface the module emits to.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

type loggerBox struct {
	logger Logger
}

var current atomic.Value

func init() {
	current.Store(loggerBox{logger: slog.Default()})
}

// L returns the current module logger.
func L() Logger {
	return current.Load().(loggerBox).logger
}

// SetLogger replaces the module logger. A nil logger silences the module.
func SetLogger(logger Logger) {
	if logger == nil {
		logger = nopLogger{}
	}
	current.Store(loggerBox{logger: logger})
}
