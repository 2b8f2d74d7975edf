package tiling

import (
	"log/slog"

	"github.com/gogpu/tiling/internal/logging"
)

// SetLogger configures the logger for tiling and all its sub-packages.
// By default, tiling produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by tiling:
//   - [slog.LevelDebug]: atlas construction, quadtree growth, exploration steps
//   - [slog.LevelWarn]: growth exhaustion, tile edges whose neighbor could not be resolved
//
// Example:
//
//	tiling.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// Logger returns the current logger used by tiling.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
