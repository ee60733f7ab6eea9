package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewJSONLogger returns the process-wide JSON logger tagged with the service
// name, so api, loader and mcp log lines stay distinguishable when shipped
// to the same sink.
func NewJSONLogger(service, level string) *slog.Logger {
	return newLogger(os.Stdout, service, level)
}

// NewStderrJSONLogger is for processes whose stdout carries a protocol
// stream and must stay free of log lines, such as the MCP stdio server.
func NewStderrJSONLogger(service, level string) *slog.Logger {
	return newLogger(os.Stderr, service, level)
}

func newLogger(w io.Writer, service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler).With("service", service)
}

func parseLevel(level string) slog.Level {
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
