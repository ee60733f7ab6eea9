package usecase

import (
	"context"
	"fmt"

	"github.com/oncograph/paperqa/internal/core/domain"
	"github.com/oncograph/paperqa/internal/core/ports"
)

// ReportUseCase exports the per-model results currently in the graph as a
// workbook. It reuses the canonical results specs so the report can never
// drift from what the ask pipeline would answer.
type ReportUseCase struct {
	graph   ports.GraphExecutor
	builder ports.ReportBuilder
}

func NewReportUseCase(graph ports.GraphExecutor, builder ports.ReportBuilder) *ReportUseCase {
	return &ReportUseCase{graph: graph, builder: builder}
}

func (uc *ReportUseCase) ResultsWorkbook(ctx context.Context) ([]byte, error) {
	specs := BuildQueries(domain.IntentResults, domain.EntitySet{}, "")

	results, err := uc.graph.Execute(ctx, specs[0])
	if err != nil {
		return nil, fmt.Errorf("execute %s query: %w", specs[0].Tag, err)
	}
	best, err := uc.graph.Execute(ctx, specs[1])
	if err != nil {
		return nil, fmt.Errorf("execute %s query: %w", specs[1].Tag, err)
	}

	workbook, err := uc.builder.Build(results, best)
	if err != nil {
		return nil, fmt.Errorf("build results workbook: %w", err)
	}
	return workbook, nil
}
