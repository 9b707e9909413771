package portfolio

import (
	"log/slog"
	"sync/atomic"
)

// silent is the logger in effect until SetLogger installs another one.
var silent = slog.New(slog.DiscardHandler)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes the log output of portfolio and its sub-packages to l.
// Nothing is logged by default; nil restores that. SetLogger may be called
// while frames are being rendered.
//
// Levels:
//   - [slog.LevelDebug]: pipeline, buffer and texture creation, shader builds
//   - [slog.LevelInfo]: device selection, session open, demo activation
//   - [slog.LevelWarn]: backend fallbacks, rejected window sizes
//
// The binaries install a text handler on stderr:
//
//	portfolio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}
