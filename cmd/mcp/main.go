package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpadapter "github.com/oncograph/paperqa/internal/adapters/mcp"
	"github.com/oncograph/paperqa/internal/bootstrap"
	"github.com/oncograph/paperqa/internal/config"
	"github.com/oncograph/paperqa/internal/observability/logging"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	// stdout carries the MCP protocol, so logs go to stderr.
	slog.SetDefault(logging.NewStderrJSONLogger("paperqa-mcp", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap error", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := mcpadapter.NewServer(app.AskUC, version)
	if err := srv.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
