package paperdoc

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/oncograph/paperqa/internal/core/domain"
	"github.com/oncograph/paperqa/internal/core/ports"
)

// Extractor turns a stored upload into a loadable paper document. Extraction
// JSON is decoded as-is; PDF uploads are converted by pulling the document
// info and page text and splitting it on the known section headings.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, paper *domain.Paper) (*domain.PaperDocument, error) {
	if paper == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract paper", errors.New("nil paper"))
	}

	reader, err := e.storage.Open(ctx, paper.StoragePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	switch {
	case isPDF(paper):
		return extractPDF(reader, paper)
	case isJSON(paper):
		return extractJSON(reader)
	default:
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"extract paper",
			errors.New("unsupported upload type: "+paper.MimeType),
		)
	}
}

func isPDF(paper *domain.Paper) bool {
	if strings.Contains(strings.ToLower(paper.MimeType), "pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(paper.Filename), ".pdf")
}

func isJSON(paper *domain.Paper) bool {
	if strings.Contains(strings.ToLower(paper.MimeType), "json") {
		return true
	}
	return strings.EqualFold(filepath.Ext(paper.Filename), ".json")
}
