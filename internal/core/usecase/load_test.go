package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/oncograph/paperqa/internal/core/domain"
)

type extractorFake struct {
	doc *domain.PaperDocument
	err error
}

func (f *extractorFake) Extract(context.Context, *domain.Paper) (*domain.PaperDocument, error) {
	return f.doc, f.err
}

type graphLoaderFake struct {
	loaded *domain.PaperDocument
	err    error
}

func (f *graphLoaderFake) Load(_ context.Context, doc *domain.PaperDocument) error {
	if f.err != nil {
		return f.err
	}
	f.loaded = doc
	return nil
}

func paperDocWithSections() *domain.PaperDocument {
	return &domain.PaperDocument{
		Sections: map[string]domain.PaperSection{
			"Introduction": {Text: "intro text"},
		},
	}
}

func TestLoadByIDHappyPath(t *testing.T) {
	repo := &paperRepoFake{papers: map[string]*domain.Paper{
		"p-1": {ID: "p-1", StoragePath: "p-1_extract.json"},
	}}
	loader := &graphLoaderFake{}
	uc := NewLoadPaperUseCase(repo, &extractorFake{doc: paperDocWithSections()}, loader)

	if err := uc.LoadByID(context.Background(), "p-1"); err != nil {
		t.Fatalf("LoadByID() error = %v", err)
	}
	if loader.loaded == nil {
		t.Fatalf("expected graph load to run")
	}
	if len(repo.updates) != 2 || repo.updates[0] != domain.StatusProcessing || repo.updates[1] != domain.StatusLoaded {
		t.Fatalf("expected processing then loaded, got %v", repo.updates)
	}
}

func TestLoadByIDMarksFailedOnExtractError(t *testing.T) {
	repo := &paperRepoFake{papers: map[string]*domain.Paper{"p-1": {ID: "p-1"}}}
	uc := NewLoadPaperUseCase(repo, &extractorFake{err: errors.New("bad json")}, &graphLoaderFake{})

	if err := uc.LoadByID(context.Background(), "p-1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.updates) != 2 || repo.updates[1] != domain.StatusFailed {
		t.Fatalf("expected failed status, got %v", repo.updates)
	}
}

func TestLoadByIDRejectsEmptyDocument(t *testing.T) {
	repo := &paperRepoFake{papers: map[string]*domain.Paper{"p-1": {ID: "p-1"}}}
	uc := NewLoadPaperUseCase(repo, &extractorFake{doc: &domain.PaperDocument{}}, &graphLoaderFake{})

	err := uc.LoadByID(context.Background(), "p-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadByIDMarksFailedOnLoaderError(t *testing.T) {
	repo := &paperRepoFake{papers: map[string]*domain.Paper{"p-1": {ID: "p-1"}}}
	uc := NewLoadPaperUseCase(repo, &extractorFake{doc: paperDocWithSections()}, &graphLoaderFake{err: errors.New("neo4j down")})

	if err := uc.LoadByID(context.Background(), "p-1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.updates) != 2 || repo.updates[1] != domain.StatusFailed {
		t.Fatalf("expected failed status, got %v", repo.updates)
	}
}
