// Package logging provides structured logging for nilrt-snac.
//
// Emitters are named slog loggers backed by a ConsoleHandler writing to the
// process's diagnostic stream. Every emitter is tracked in a process-wide
// registry so the session recorder can snapshot them and reroute their
// output through the capture writer for the duration of a command.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/ni/nilrt-snac/internal/brand"
)

// Level represents log severity levels.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	// processLevel is shared by every emitter; -v flips it to debug.
	processLevel slog.LevelVar

	registryMu sync.Mutex
	registry   []*Logger

	defaultLogger *Logger
	once          sync.Once
)

// Logger is a named log emitter.
type Logger struct {
	*slog.Logger
	name    string
	handler *ConsoleHandler
}

// New creates an emitter with the given name, writing to stderr, and
// registers it for session capture.
func New(name string) *Logger {
	h := NewConsoleHandler(os.Stderr, name, &slog.HandlerOptions{Level: &processLevel})
	l := &Logger{
		Logger:  slog.New(h),
		name:    name,
		handler: h,
	}
	registryMu.Lock()
	registry = append(registry, l)
	registryMu.Unlock()
	return l
}

// Name returns the emitter's name.
func (l *Logger) Name() string {
	return l.name
}

// Handler returns the emitter's console handler.
func (l *Logger) Handler() *ConsoleHandler {
	return l.handler
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Emitters returns a snapshot of every registered emitter.
func Emitters() []*Logger {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]*Logger, len(registry))
	copy(out, registry)
	return out
}

// SetLevel changes the process-wide log level.
func SetLevel(level Level) {
	processLevel.Set(level)
}

// GetLevel returns the process-wide log level.
func GetLevel() Level {
	return processLevel.Level()
}

// Default returns the root emitter, creating it if necessary.
func Default() *Logger {
	once.Do(func() {
		defaultLogger = New(brand.LowerName)
	})
	return defaultLogger
}

// Package-level convenience functions using the root emitter.

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) {
	Default().Error(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) {
	Default().Warn(fmt.Sprintf(format, args...))
}
