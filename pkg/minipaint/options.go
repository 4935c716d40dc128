package minipaint

import (
	"time"
)

// DefaultShutdownTimeout is the default timeout for graceful shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// Options configures a Painter.
type Options struct {
	// Headless runs without creating a window. Run blocks until Stop.
	Headless bool

	// WindowTitle overrides the configured window title.
	WindowTitle string

	// SaveDir overrides the configured save directory. It survives
	// configuration reloads.
	SaveDir string

	// LuaCPULimit overrides the instruction limit for RunScript.
	// Zero means use the default (10 million instructions).
	LuaCPULimit uint64

	// LuaMemoryLimit overrides the memory limit for RunScript in bytes.
	// Zero means use the default (50 MB).
	LuaMemoryLimit uint64

	// ShutdownTimeout sets the maximum time Stop waits for Run to return.
	// Zero means use DefaultShutdownTimeout.
	ShutdownTimeout time.Duration

	// Logger receives debug and info messages. If nil, nothing is logged.
	Logger Logger

	// Metrics sets a custom metrics collector. If nil, a new one is used.
	Metrics *Metrics

	// WatchConfig reloads the configuration in place when the file
	// changes on disk. Only configurations created with New are watched.
	WatchConfig bool

	// WatchDebounce sets the debounce interval for file change events.
	// Zero means use DefaultWatchDebounce.
	WatchDebounce time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}
