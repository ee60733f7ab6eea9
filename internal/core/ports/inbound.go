package ports

import (
	"context"
	"io"

	"github.com/oncograph/paperqa/internal/core/domain"
)

// QuestionAnswerer is the inbound contract for answering questions against
// the paper knowledge graph.
type QuestionAnswerer interface {
	Ask(ctx context.Context, question string, limit int) (*domain.Answer, error)
}

// PaperIngestor is the inbound contract for paper upload orchestration.
type PaperIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Paper, error)
}

// PaperReader is the inbound read model for paper metadata/state.
type PaperReader interface {
	GetByID(ctx context.Context, id string) (*domain.Paper, error)
}

// PaperLoader is the inbound contract for asynchronous graph loading.
type PaperLoader interface {
	LoadByID(ctx context.Context, paperID string) error
}

// ResultsReporter produces the model-results workbook.
type ResultsReporter interface {
	ResultsWorkbook(ctx context.Context) ([]byte, error)
}
