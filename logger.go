package avatar

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false, so callers skip
// formatting attributes altogether.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// silent is the logger in effect until SetLogger is called.
var silent = slog.New(nopHandler{})

// current holds the active logger. Hosts may swap it from another
// goroutine while a widget is drawing.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger configures the logger for avatar and integration/avatarcanvas.
// The package is silent until SetLogger is called; nil makes it silent
// again.
//
// Levels:
//   - [slog.LevelDebug]: cache rebuilds, measurement, mode changes, texture uploads
//   - [slog.LevelWarn]: recoverable input problems (malformed saved state,
//     blank initials replaced by the placeholder)
//
// Example:
//
//	avatar.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the active logger.
func Logger() *slog.Logger {
	return current.Load()
}
