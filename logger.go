package awt

import (
	"log/slog"

	"github.com/nullpops/awt/internal/logging"
)

// SetLogger configures the logger for awt and all its sub-packages.
// By default, awt produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by awt:
//   - [slog.LevelDebug]: fast rejects, outline cache misses, area sizes
//   - [slog.LevelInfo]: fonts opened
//   - [slog.LevelWarn]: host fill errors, unbalanced Restore
//
// Example:
//
//	awt.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by awt.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
