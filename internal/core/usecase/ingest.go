package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oncograph/paperqa/internal/core/domain"
	"github.com/oncograph/paperqa/internal/core/ports"
)

type IngestPaperUseCase struct {
	repo    ports.PaperRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewIngestPaperUseCase(
	repo ports.PaperRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestPaperUseCase {
	return &IngestPaperUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

func (uc *IngestPaperUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Paper, error) {
	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	paper := &domain.Paper{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, paper); err != nil {
		return nil, fmt.Errorf("create paper metadata: %w", err)
	}

	if err := uc.queue.PublishPaperIngested(ctx, paper.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion event: %w", err)
	}

	return paper, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	// filepath.Base turns "" into "." and keeps "..", "/" maps to "_";
	// anything without a real name character falls back to the default.
	if strings.Trim(base, "._-") == "" {
		return "paper.bin"
	}
	return base
}
