// Package logging configures the process-wide structured logger.
package logging

import (
    "log/slog"
    "os"
)

// New returns a slog logger writing JSON to stderr. The debug flag lowers
// the level so request-scoped details become visible.
func New(debug bool) *slog.Logger {
    level := slog.LevelInfo
    if debug {
        level = slog.LevelDebug
    }
    return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
