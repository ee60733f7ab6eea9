package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/oncograph/paperqa/internal/core/domain"
)

type graphExecutorFake struct {
	mu        sync.Mutex
	executed  []string
	rowsByTag map[string][]domain.Row
	errByTag  map[string]error
}

func (f *graphExecutorFake) Execute(_ context.Context, spec domain.QuerySpec) ([]domain.Row, error) {
	f.mu.Lock()
	f.executed = append(f.executed, spec.Tag)
	f.mu.Unlock()
	if err := f.errByTag[spec.Tag]; err != nil {
		return nil, err
	}
	return f.rowsByTag[spec.Tag], nil
}

type questionLogFake struct {
	mu      sync.Mutex
	records []domain.QuestionRecord
	err     error
}

func (f *questionLogFake) Insert(_ context.Context, record domain.QuestionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *questionLogFake) ListRecent(context.Context, int) ([]domain.QuestionRecord, error) {
	return nil, nil
}

func TestAskSymptomsPipeline(t *testing.T) {
	graph := &graphExecutorFake{rowsByTag: map[string][]domain.Row{
		TagSymptoms: {{"item": "persistent cough"}, {"item": "chest pain"}},
	}}
	log := &questionLogFake{}
	uc := NewAskUseCase(graph, log, 8)

	answer, err := uc.Ask(context.Background(), "What are the symptoms of lung cancer?", 0)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer.Intent != domain.IntentSymptoms {
		t.Fatalf("expected symptoms intent, got %s", answer.Intent)
	}
	if len(answer.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(answer.Results))
	}
	for _, row := range answer.Results {
		if row.Tag() != TagSymptoms {
			t.Fatalf("expected Symptoms tag on every row, got %s", row.Tag())
		}
		if _, ok := row[domain.FieldScore]; !ok {
			t.Fatalf("expected score field on row %v", row)
		}
	}
	if len(log.records) != 1 {
		t.Fatalf("expected one audit record, got %d", len(log.records))
	}
	if log.records[0].Intent != domain.IntentSymptoms || log.records[0].RowCount != 2 {
		t.Fatalf("audit record mismatch: %+v", log.records[0])
	}
}

func TestAskResultsExecutesBothSpecs(t *testing.T) {
	graph := &graphExecutorFake{rowsByTag: map[string][]domain.Row{
		TagResults:   {{"model": "Random Forest", "accuracy": 99.99}},
		TagBestModel: {{"bestModel": "Random Forest"}},
	}}
	uc := NewAskUseCase(graph, nil, 8)

	answer, err := uc.Ask(context.Background(), "What accuracy did the random forest achieve?", 0)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(graph.executed) != 2 {
		t.Fatalf("expected 2 executed specs, got %v", graph.executed)
	}
	if len(answer.Results) != 2 {
		t.Fatalf("expected rows from both specs, got %d", len(answer.Results))
	}
	// The Results row gets lexical overlap plus the proximity boost; the
	// BestModel row has no scoring target field and must rank below it.
	if answer.Results[0].Tag() != TagResults {
		t.Fatalf("expected Results row first, got %s", answer.Results[0].Tag())
	}
}

func TestAskToleratesZeroRows(t *testing.T) {
	graph := &graphExecutorFake{rowsByTag: map[string][]domain.Row{}}
	uc := NewAskUseCase(graph, nil, 8)

	answer, err := uc.Ask(context.Background(), "What are the symptoms?", 0)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(answer.Results) != 0 {
		t.Fatalf("expected empty results, got %d", len(answer.Results))
	}
}

func TestAskEmptyQuestionRejected(t *testing.T) {
	uc := NewAskUseCase(&graphExecutorFake{}, nil, 8)
	_, err := uc.Ask(context.Background(), "   ", 0)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAskPropagatesExecutorError(t *testing.T) {
	graph := &graphExecutorFake{errByTag: map[string]error{TagSymptoms: errors.New("neo4j down")}}
	uc := NewAskUseCase(graph, nil, 8)
	_, err := uc.Ask(context.Background(), "What are the symptoms?", 0)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestAskAuditFailureDoesNotFailAnswer(t *testing.T) {
	graph := &graphExecutorFake{rowsByTag: map[string][]domain.Row{
		TagSymptoms: {{"item": "cough"}},
	}}
	uc := NewAskUseCase(graph, &questionLogFake{err: errors.New("pg down")}, 8)

	answer, err := uc.Ask(context.Background(), "What are the symptoms?", 0)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(answer.Results) != 1 {
		t.Fatalf("expected 1 result despite audit failure, got %d", len(answer.Results))
	}
}

func TestAskHonorsLimit(t *testing.T) {
	rows := make([]domain.Row, 12)
	for i := range rows {
		rows[i] = domain.Row{"item": "cough"}
	}
	graph := &graphExecutorFake{rowsByTag: map[string][]domain.Row{TagSymptoms: rows}}
	uc := NewAskUseCase(graph, nil, 8)

	answer, err := uc.Ask(context.Background(), "What are the symptoms?", 0)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(answer.Results) != 8 {
		t.Fatalf("expected default top 8, got %d", len(answer.Results))
	}

	answer, err = uc.Ask(context.Background(), "What are the symptoms?", 3)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(answer.Results) != 3 {
		t.Fatalf("expected explicit limit of 3, got %d", len(answer.Results))
	}
}
