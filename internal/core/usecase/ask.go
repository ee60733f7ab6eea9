package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/oncograph/paperqa/internal/core/domain"
	"github.com/oncograph/paperqa/internal/core/ports"
)

type AskUseCase struct {
	graph       ports.GraphExecutor
	questionLog ports.QuestionLog
	topN        int
}

// NewAskUseCase wires the answer pipeline. questionLog may be nil, in which
// case audit logging is skipped.
func NewAskUseCase(graph ports.GraphExecutor, questionLog ports.QuestionLog, topN int) *AskUseCase {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &AskUseCase{
		graph:       graph,
		questionLog: questionLog,
		topN:        topN,
	}
}

// Ask runs the full pipeline: classify the question, build the query specs,
// execute them against the graph, score the rows and keep the best ones.
// Specs execute concurrently but their rows are reassembled in the builder's
// emission order before ranking, so tag identity and tie order never depend
// on completion order.
func (uc *AskUseCase) Ask(ctx context.Context, question string, limit int) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ask", errors.New("question is empty"))
	}
	if limit <= 0 {
		limit = uc.topN
	}

	intent, entities := Classify(question)
	specs := BuildQueries(intent, entities, question)

	rowsBySpec := make([][]domain.Row, len(specs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		group.Go(func() error {
			rows, err := uc.graph.Execute(groupCtx, spec)
			if err != nil {
				return fmt.Errorf("execute %s query: %w", spec.Tag, err)
			}
			rowsBySpec[i] = rows
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	scored := make([]domain.Row, 0)
	for i, spec := range specs {
		scored = append(scored, ScoreRows(question, spec.Tag, rowsBySpec[i], entities)...)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score() > scored[j].Score()
	})
	results := SelectTopN(scored, limit)

	uc.audit(ctx, question, intent, results)

	return &domain.Answer{
		Question: question,
		Intent:   intent,
		Entities: entities,
		Results:  results,
	}, nil
}

// audit is best-effort: a failed insert never fails the answer path.
func (uc *AskUseCase) audit(ctx context.Context, question string, intent domain.Intent, results []domain.Row) {
	if uc.questionLog == nil {
		return
	}

	topScore := 0.0
	if len(results) > 0 {
		topScore = results[0].Score()
	}
	record := domain.QuestionRecord{
		ID:        uuid.NewString(),
		Question:  question,
		Intent:    intent,
		RowCount:  len(results),
		TopScore:  topScore,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.questionLog.Insert(ctx, record); err != nil {
		slog.Warn("question_audit_insert_failed", "intent", string(intent), "error", err)
	}
}
