// Package logging holds the logger shared by every polymap package.
//
// Nothing is logged until SetLogger installs a handler. The packages log at
// these levels:
//   - debug: rebuild and draw decisions per frame
//   - info: datasets loaded, outputs written
//   - warn: recoverable data problems (bad scalars, failed reloads)
//   - error: render requests that cannot be served
package logging

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

var (
	silent  = slog.New(slog.DiscardHandler)
	current atomic.Pointer[slog.Logger]
)

// SetLogger replaces the shared logger; nil silences it again.
func SetLogger(l *slog.Logger) {
	current.Store(l)
}

// Logger returns the shared logger, never nil.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return silent
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}
