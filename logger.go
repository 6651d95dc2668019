package mapoverlay

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/mapoverlay/orient"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for mapoverlay and its sub-packages.
// By default the library produces no log output. Pass nil to disable
// logging again.
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame diagnostics
//   - [slog.LevelInfo]: lifecycle transitions (context ready/lost, removal)
//   - [slog.LevelWarn]: recoverable issues (unknown up axis, individual
//     context reset call failures)
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// Sub-packages that log on their own keep the same configuration.
	orient.SetLogger(l)
}

// Logger returns the current logger used by mapoverlay.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
