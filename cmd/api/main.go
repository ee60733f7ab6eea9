package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/netutil"

	httpadapter "github.com/oncograph/paperqa/internal/adapters/http"
	"github.com/oncograph/paperqa/internal/bootstrap"
	"github.com/oncograph/paperqa/internal/config"
	"github.com/oncograph/paperqa/internal/observability/logging"
	"github.com/oncograph/paperqa/internal/observability/metrics"
)

const service = "paperqa-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.NewJSONLogger(service, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap error", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	httpMetrics := metrics.NewHTTPServerMetrics(service)
	router := httpadapter.NewRouter(
		app.AskUC,
		app.IngestUC,
		app.Repo,
		app.ReportUC,
		app.QuestionLog,
		httpMetrics,
		httpadapter.Options{
			Service:          service,
			RateLimitRPS:     cfg.APIRateLimitRPS,
			RateLimitBurst:   cfg.APIRateLimitBurst,
			MaxInFlight:      cfg.APIMaxInFlight,
			BackpressureWait: time.Duration(cfg.APIBackpressureWaitMS) * time.Millisecond,
		},
	)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen error", "addr", server.Addr, "error", err)
		os.Exit(1)
	}
	if cfg.APIMaxConns > 0 {
		listener = netutil.LimitListener(listener, cfg.APIMaxConns)
	}

	go func() {
		slog.Info("api listening", "port", cfg.APIPort)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("api server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api shutdown error", "error", err)
	}
}
