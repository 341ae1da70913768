// Package nocturne hosts cross-cutting concerns shared by the render
// core packages: logger configuration lives here so that callers can
// enable diagnostics for the whole engine with one call.
package nocturne

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled returns false so callers
// skip message formatting entirely when logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(nopHandler{})
	loggerPtr.Store(l)
}

// SetLogger configures the logger used by all engine packages. By
// default the engine produces no log output. Pass nil to restore the
// silent default. Safe for concurrent use.
//
// Levels used:
//   - Debug: per-frame diagnostics (batch sizes, recompile timing)
//   - Info: lifecycle events (program created, watcher armed)
//   - Warn: non-fatal issues (recompile failed, framebuffer incomplete)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the active engine logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
