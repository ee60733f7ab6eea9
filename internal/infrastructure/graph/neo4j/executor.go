package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/oncograph/paperqa/internal/core/domain"
	"github.com/oncograph/paperqa/internal/infrastructure/resilience"
)

// Executor runs query specs against Neo4j using read sessions. Row order is
// whatever the store returns; ranking downstream imposes the only ordering
// callers may rely on.
type Executor struct {
	driver   neo4j.DriverWithContext
	database string
	executor *resilience.Executor
}

func NewExecutor(driver neo4j.DriverWithContext, database string, executor *resilience.Executor) *Executor {
	return &Executor{
		driver:   driver,
		database: database,
		executor: executor,
	}
}

// OpenDriver connects and verifies connectivity so misconfiguration fails at
// startup instead of on the first question.
func OpenDriver(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return driver, nil
}

func (e *Executor) Execute(ctx context.Context, spec domain.QuerySpec) ([]domain.Row, error) {
	var rows []domain.Row
	call := func(callCtx context.Context) error {
		collected, err := e.run(callCtx, spec)
		if err != nil {
			return err
		}
		rows = collected
		return nil
	}

	var err error
	if e.executor != nil {
		err = e.executor.Execute(ctx, "neo4j.query."+spec.Tag, call, classifyNeo4jError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded(err)
	}
	return rows, nil
}

func (e *Executor) run(ctx context.Context, spec domain.QuerySpec) ([]domain.Row, error) {
	session := e.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: e.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, spec.Query, spec.Params)
	if err != nil {
		return nil, fmt.Errorf("run %s query: %w", spec.Tag, err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect %s rows: %w", spec.Tag, err)
	}

	rows := make([]domain.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, domain.Row(record.AsMap()))
	}
	return rows, nil
}
