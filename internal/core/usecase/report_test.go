package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/oncograph/paperqa/internal/core/domain"
)

type reportBuilderFake struct {
	results []domain.Row
	best    []domain.Row
	err     error
}

func (f *reportBuilderFake) Build(results []domain.Row, best []domain.Row) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.results = results
	f.best = best
	return []byte("xlsx"), nil
}

func TestResultsWorkbookRunsCanonicalSpecs(t *testing.T) {
	graph := &graphExecutorFake{rowsByTag: map[string][]domain.Row{
		TagResults:   {{"model": "SVM", "accuracy": 98.91}},
		TagBestModel: {{"bestModel": "Random Forest"}},
	}}
	builder := &reportBuilderFake{}
	uc := NewReportUseCase(graph, builder)

	data, err := uc.ResultsWorkbook(context.Background())
	if err != nil {
		t.Fatalf("ResultsWorkbook() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected workbook bytes")
	}
	if len(builder.results) != 1 || len(builder.best) != 1 {
		t.Fatalf("expected rows from both specs, got %d/%d", len(builder.results), len(builder.best))
	}
	if len(graph.executed) != 2 {
		t.Fatalf("expected both canonical specs executed, got %v", graph.executed)
	}
}

func TestResultsWorkbookGraphError(t *testing.T) {
	graph := &graphExecutorFake{errByTag: map[string]error{TagResults: errors.New("neo4j down")}}
	uc := NewReportUseCase(graph, &reportBuilderFake{})
	if _, err := uc.ResultsWorkbook(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
