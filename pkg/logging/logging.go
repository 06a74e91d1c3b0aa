package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	once          sync.Once
	defaultLogger *slog.Logger
)

// ForTestsOnlyResetLogger resets the `sync.Once` guard so tests can
// re-initialize the global logger with different settings. Never call this
// from production code.
func ForTestsOnlyResetLogger() {
	once = sync.Once{}
	defaultLogger = nil
}

// Init sets up the process-wide logger. It is effective only on the first
// call; later calls (and a racing GetLogger) are no-ops, so call it once at
// startup before anything logs.
//
// Parameters:
//   - level: the minimum level to record (e.g. `slog.LevelInfo`).
//   - output: where log entries go (e.g. `os.Stdout` or a file).
func Init(level slog.Level, output io.Writer) {
	once.Do(func() {
		defaultLogger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	})
}

// GetLogger returns the shared process-wide logger. When Init was never
// called it falls back to `os.Stderr` at `slog.LevelInfo`.
func GetLogger() *slog.Logger {
	once.Do(func() {
		defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: true,
		}))
	})
	return defaultLogger
}
