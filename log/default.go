package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// DefaultContextProvider returns the context used by the logging functions
// that do not take one.
//
//nolint:gochecknoglobals
var DefaultContextProvider = context.TODO

//nolint:gochecknoglobals
var (
	defaultMu  sync.RWMutex
	defaultLog = Make(os.Stderr)
)

// Default returns the package default logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLog
}

// Config reconfigures the package default logger with opts applied over its
// current configuration.
func Config(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLog = defaultLog.Wrap(opts...)
}

// With returns a copy of the default logger that adds attrs to each message.
func With(attrs ...slog.Attr) Logger { return Default().With(attrs...) }

// TraceContext logs at [LevelTrace] using the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelTrace, msg, attrs)
}

// DebugContext logs at [LevelDebug] using the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelDebug, msg, attrs)
}

// Debug logs at [LevelDebug] using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// InfoContext logs at [LevelInfo] using the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelInfo, msg, attrs)
}

// Info logs at [LevelInfo] using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// WarnContext logs at [LevelWarn] using the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelWarn, msg, attrs)
}

// Warn logs at [LevelWarn] using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// ErrorContext logs at [LevelError] using the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelError, msg, attrs)
}

// Error logs at [LevelError] using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelError, msg, attrs)
}

func logDefault(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	l := Default()
	if l.Logger == nil || !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	// 0=runtime.Callers 1=emit 2=logDefault 3=package function 4=caller
	l.emit(ctx, level, msg, 4, attrs)
}
