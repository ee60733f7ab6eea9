package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/oncograph/paperqa/internal/core/domain"
	"github.com/oncograph/paperqa/internal/core/ports"
)

// LoadPaperUseCase is the worker-side pipeline: fetch the uploaded paper,
// extract a loadable document from it and replace the graph content.
type LoadPaperUseCase struct {
	repo      ports.PaperRepository
	extractor ports.PaperExtractor
	loader    ports.GraphLoader
}

func NewLoadPaperUseCase(
	repo ports.PaperRepository,
	extractor ports.PaperExtractor,
	loader ports.GraphLoader,
) *LoadPaperUseCase {
	return &LoadPaperUseCase{
		repo:      repo,
		extractor: extractor,
		loader:    loader,
	}
}

func (uc *LoadPaperUseCase) LoadByID(ctx context.Context, paperID string) error {
	if err := uc.repo.UpdateStatus(ctx, paperID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	if err := uc.loadPipeline(ctx, paperID); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, paperID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.UpdateStatus(ctx, paperID, domain.StatusLoaded, ""); err != nil {
		return fmt.Errorf("set status=loaded: %w", err)
	}
	return nil
}

func (uc *LoadPaperUseCase) loadPipeline(ctx context.Context, paperID string) error {
	paper, err := uc.repo.GetByID(ctx, paperID)
	if err != nil {
		return fmt.Errorf("fetch paper by id: %w", err)
	}

	doc, err := uc.extractor.Extract(ctx, paper)
	if err != nil {
		return fmt.Errorf("extract paper document: %w", err)
	}
	if doc == nil || len(doc.Sections) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "extract paper document", errors.New("no sections extracted"))
	}

	if err := uc.loader.Load(ctx, doc); err != nil {
		return fmt.Errorf("load knowledge graph: %w", err)
	}
	return nil
}
