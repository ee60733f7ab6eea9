package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oncograph/paperqa/internal/bootstrap"
	"github.com/oncograph/paperqa/internal/config"
	"github.com/oncograph/paperqa/internal/observability/logging"
	"github.com/oncograph/paperqa/internal/observability/metrics"
)

const service = "paperqa-loader"

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

	workerMetrics := metrics.NewWorkerMetrics(service)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.LoaderMetricsPort,
		Handler: metricsHandler(workerMetrics),
	}
	go func() {
		slog.Info("loader metrics listening", "port", cfg.LoaderMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	loadTimeout := time.Duration(cfg.LoadTimeoutSeconds) * time.Second

	slog.Info("loader subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribePaperIngested(ctx, func(handlerCtx context.Context, paperID string) error {
		if paper, err := app.Repo.GetByID(handlerCtx, paperID); err == nil {
			workerMetrics.ObserveQueueLag(service, time.Since(paper.CreatedAt))
		}

		workerMetrics.StartLoad()
		start := time.Now()

		loadCtx, cancel := context.WithTimeout(handlerCtx, loadTimeout)
		defer cancel()
		loadErr := app.LoadUC.LoadByID(loadCtx, paperID)

		workerMetrics.FinishLoad(service, time.Since(start), loadErr)
		return loadErr
	})
	if err != nil {
		slog.Error("loader subscribe error", "error", err)
		os.Exit(1)
	}
}

func metricsHandler(m *metrics.WorkerMetrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
