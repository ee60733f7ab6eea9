package ports

import (
	"context"
	"io"

	"github.com/oncograph/paperqa/internal/core/domain"
)

// GraphExecutor runs one query spec against the knowledge graph and returns
// its rows. No ordering guarantee is assumed from the store; ranking imposes
// the only ordering the caller can rely on.
type GraphExecutor interface {
	Execute(ctx context.Context, spec domain.QuerySpec) ([]domain.Row, error)
}

// GraphLoader replaces the graph content with one paper document.
type GraphLoader interface {
	Load(ctx context.Context, doc *domain.PaperDocument) error
}

// PaperRepository persists and reads paper upload state.
type PaperRepository interface {
	Create(ctx context.Context, paper *domain.Paper) error
	GetByID(ctx context.Context, id string) (*domain.Paper, error)
	UpdateStatus(ctx context.Context, id string, status domain.PaperStatus, errMessage string) error
}

// QuestionLog records answered questions for audit purposes.
type QuestionLog interface {
	Insert(ctx context.Context, record domain.QuestionRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.QuestionRecord, error)
}

// ObjectStorage stores uploaded source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes paper ingestion events.
type MessageQueue interface {
	PublishPaperIngested(ctx context.Context, paperID string) error
	SubscribePaperIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// PaperExtractor turns a stored upload into a loadable paper document.
type PaperExtractor interface {
	Extract(ctx context.Context, paper *domain.Paper) (*domain.PaperDocument, error)
}

// ReportBuilder renders rows from the results catalog into a workbook.
type ReportBuilder interface {
	Build(results []domain.Row, best []domain.Row) ([]byte, error)
}
