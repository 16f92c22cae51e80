package log

import (
	"io"
	"log/slog"
	"sync"
)

var (
	mu            sync.RWMutex
	defaultLogger *Logger

	// discard swallows everything logged before SetDefaultLogger is called, which is mostly in tests
	discard = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
)

// SetDefaultLogger sets the logger used by the package level logging functions.  Passing nil restores the discarding
// logger.
func SetDefaultLogger(logger *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// DefaultLogger returns the current default logger.  It is never nil.
func DefaultLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if defaultLogger == nil {
		return discard
	}
	return defaultLogger
}

// With returns the default logger with attributes attached to every record it writes
func With(args ...any) *Logger {
	return DefaultLogger().With(args...)
}

func Trace(msg string, args ...any) { DefaultLogger().Trace(msg, args...) }

func Debug(msg string, args ...any) { DefaultLogger().Debug(msg, args...) }

func Info(msg string, args ...any) { DefaultLogger().Info(msg, args...) }

func Warn(msg string, args ...any) { DefaultLogger().Warn(msg, args...) }

func Error(msg string, args ...any) { DefaultLogger().Error(msg, args...) }
