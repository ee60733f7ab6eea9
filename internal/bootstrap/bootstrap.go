package bootstrap

import (
	"context"
	"fmt"

	"github.com/oncograph/paperqa/internal/config"
	"github.com/oncograph/paperqa/internal/core/ports"
	"github.com/oncograph/paperqa/internal/core/usecase"
	"github.com/oncograph/paperqa/internal/infrastructure/extractor/paperdoc"
	"github.com/oncograph/paperqa/internal/infrastructure/graph/neo4j"
	"github.com/oncograph/paperqa/internal/infrastructure/queue/nats"
	"github.com/oncograph/paperqa/internal/infrastructure/report/excel"
	"github.com/oncograph/paperqa/internal/infrastructure/repository/postgres"
	"github.com/oncograph/paperqa/internal/infrastructure/resilience"
	"github.com/oncograph/paperqa/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue       ports.MessageQueue
	Repo        ports.PaperRepository
	QuestionLog ports.QuestionLog

	AskUC    ports.QuestionAnswerer
	IngestUC ports.PaperIngestor
	LoadUC   ports.PaperLoader
	ReportUC ports.ResultsReporter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewPaperRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	questionLog := postgres.NewQuestionLog(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	resilienceExec := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilienceExec,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	driver, err := neo4j.OpenDriver(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return nil, fmt.Errorf("open neo4j: %w", err)
	}
	graph := neo4j.NewExecutor(driver, cfg.Neo4jDatabase, resilienceExec)
	loader := neo4j.NewLoader(driver, cfg.Neo4jDatabase)

	extractor := paperdoc.NewExtractor(storage)

	askUC := usecase.NewAskUseCase(graph, questionLog, cfg.RankTopN)
	ingestUC := usecase.NewIngestPaperUseCase(repo, storage, queue)
	loadUC := usecase.NewLoadPaperUseCase(repo, extractor, loader)
	reportUC := usecase.NewReportUseCase(graph, excel.NewBuilder())

	return &App{
		Config: cfg,

		Queue:       queue,
		Repo:        repo,
		QuestionLog: questionLog,

		AskUC:    askUC,
		IngestUC: ingestUC,
		LoadUC:   loadUC,
		ReportUC: reportUC,

		closeFn: func() {
			queue.Close()
			_ = driver.Close(context.Background())
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
