// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured logger used by long-running
// commands such as serve.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// New returns a logger writing to w in the configured format ("json" or
// text) at the configured level. Every record carries service.
func New(w io.Writer, service string, cfg types.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", service)
}

// ParseLevel maps a level name to a slog.Level; unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
