package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jobtasks/dashboard/internal/adapters/auth"
	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/testutil"
)

func newTestDocumentStore() (*DocumentStore, *testutil.DocumentRepository) {
	repo := testutil.NewDocumentRepository()
	return NewDocumentStore(repo, auth.StaticIdentity("user-1"), logger.NewNop(), nil), repo
}

func TestDocumentStore_AddDerivesTitleAndType(t *testing.T) {
	store, _ := newTestDocumentStore()
	ctx := context.Background()

	sheet, err := store.AddDocument(ctx, "https://docs.google.com/spreadsheets/d/q3-budget", "")
	if err != nil {
		t.Fatalf("AddDocument() error: %v", err)
	}
	if sheet.Title != "Q3 Budget" || sheet.Type != entities.DocumentTypeSheets {
		t.Errorf("unexpected link %+v", sheet)
	}

	doc, err := store.AddDocument(ctx, "https://docs.google.com/document/d/xyz", "Kickoff notes")
	if err != nil {
		t.Fatalf("AddDocument() error: %v", err)
	}
	if doc.Title != "Kickoff notes" || doc.Type != entities.DocumentTypeDocs {
		t.Errorf("unexpected link %+v", doc)
	}

	docs := store.Documents()
	if len(docs) != 2 || docs[0].ID != doc.ID {
		t.Errorf("expected newest first, got %+v", docs)
	}
}

func TestDocumentStore_FailuresLeaveCollection(t *testing.T) {
	store, repo := newTestDocumentStore()
	ctx := context.Background()

	link, err := store.AddDocument(ctx, "https://drive.google.com/drive/folders/abc", "")
	if err != nil {
		t.Fatalf("AddDocument() error: %v", err)
	}
	before := store.Documents()

	repo.InsertErr = errBackend
	if _, err := store.AddDocument(ctx, "https://example.com/x", ""); !errors.Is(err, errBackend) {
		t.Fatalf("error = %v, want %v", err, errBackend)
	}
	repo.DeleteErr = errBackend
	if err := store.RemoveDocument(ctx, link.ID); !errors.Is(err, errBackend) {
		t.Fatalf("error = %v, want %v", err, errBackend)
	}
	repo.ListErr = errBackend
	if err := store.Load(ctx); !errors.Is(err, errBackend) {
		t.Fatalf("error = %v, want %v", err, errBackend)
	}

	if !reflect.DeepEqual(before, store.Documents()) {
		t.Error("collection changed after failed round trips")
	}
}

func TestDocumentStore_RemoveAndLoad(t *testing.T) {
	store, _ := newTestDocumentStore()
	ctx := context.Background()

	a, _ := store.AddDocument(ctx, "https://example.com/a", "")
	b, _ := store.AddDocument(ctx, "https://example.com/b", "")

	if err := store.RemoveDocument(ctx, a.ID); err != nil {
		t.Fatalf("RemoveDocument() error: %v", err)
	}

	fresh, _ := newTestDocumentStore()
	if len(fresh.Documents()) != 0 {
		t.Fatal("new store should start empty")
	}

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	docs := store.Documents()
	if len(docs) != 1 || docs[0].ID != b.ID {
		t.Errorf("unexpected documents after reload: %+v", docs)
	}
}

func TestDocumentStore_RejectsEmptyURL(t *testing.T) {
	store, repo := newTestDocumentStore()
	if _, err := store.AddDocument(context.Background(), "  ", "title"); !errors.Is(err, entities.ErrEmptyURL) {
		t.Fatalf("error = %v, want ErrEmptyURL", err)
	}
	if repo.Inserts != 0 {
		t.Errorf("expected no insert, got %d", repo.Inserts)
	}
}
