// Package eventconnect assembles the EventConnect screens into one
// application.
//
// Usage:
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app, err := eventconnect.New(cfg, eventconnect.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app.PostDialog.Open()
//	app.PostDialog.SetText("caption", "Hello")
//	post, ok := app.PostDialog.Submit(ctx)
package eventconnect

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Version is the application version, overridden at build time with
// -ldflags "-X github.com/vango-dev/eventconnect.Version=...".
var Version = "0.1.0-dev"

// ParseLevel maps a config log level to a slog.Level.
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
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// NewLogger returns a text logger writing to w at level. Unknown levels
// log at info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, _ := ParseLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
