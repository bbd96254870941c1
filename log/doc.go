// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured at creation time using functional options and can
// be re-derived with [Logger.Wrap]. The package keeps a default logger
// writing to standard error; the CLI reconfigures it from its --log-* flags
// with [Config] and the package-level functions write through it.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("catalog loaded", slog.Int("sections", 3))
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace is used by the resolution engine for
// per-field diagnostics.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. Text output is colorized with
// lipgloss when pretty printing is enabled and the writer is a terminal.
//
// # Time Formatting
//
// [WithTimeLayout] accepts the named layouts of the [time] package
// case-insensitively, or any custom layout. "none" disables timestamps.
package log
