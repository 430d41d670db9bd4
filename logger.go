package poly

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled is false, so nothing gets formatted.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var (
	silent  = slog.New(discard{})
	current atomic.Pointer[slog.Logger]
)

// SetLogger sends the log output of render, loop and window to l. A nil l
// silences them again, which is also the initial state.
//
// What gets logged:
//   - Debug: surface resizes and image loads (render), task start, stop and
//     dropped ticks (loop), window creation (window)
//   - Info: screenshots written by cmd/poly
//   - Warn: draws of a nil *render.Image, callback failures a task keeps
//     running through
//   - Error: the callback error that ended a task
//
// SetLogger may be called while other goroutines are logging.
func SetLogger(l *slog.Logger) { current.Store(l) }

// Logger returns the logger set by SetLogger, or a silent one.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return silent
}
