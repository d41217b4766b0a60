package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/infrastructure/metrics"
	"github.com/jobtasks/dashboard/internal/ports"
)

// DocumentStore owns the current user's document links under the same
// confirm-then-reflect rule as TaskStore. Links are never updated.
type DocumentStore struct {
	repo     ports.DocumentRepository
	identity ports.IdentityProvider
	logger   *logger.Logger
	metrics  *metrics.Metrics

	mu        sync.RWMutex
	documents []entities.DocumentLink
}

func NewDocumentStore(repo ports.DocumentRepository, identity ports.IdentityProvider, logger *logger.Logger, m *metrics.Metrics) *DocumentStore {
	return &DocumentStore{
		repo:      repo,
		identity:  identity,
		logger:    logger.WithComponent("document_store"),
		metrics:   m,
		documents: []entities.DocumentLink{},
	}
}

// Documents returns a copy of the collection, newest first.
func (s *DocumentStore) Documents() []entities.DocumentLink {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.DocumentLink, len(s.documents))
	copy(out, s.documents)
	return out
}

func (s *DocumentStore) Load(ctx context.Context) error {
	owner, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		s.logger.Errorw("No current user", "operation", "load", "error", err)
		return fmt.Errorf("load documents: %w", err)
	}

	docs, err := s.repo.List(ctx, owner)
	s.metrics.ObserveRoundTrip("document", "load", err)
	if err != nil {
		s.logger.Errorw("Error loading documents", "error", err, "user_id", owner)
		return fmt.Errorf("load documents: %w", err)
	}

	if docs == nil {
		docs = []entities.DocumentLink{}
	}

	s.mu.Lock()
	s.documents = docs
	s.mu.Unlock()
	return nil
}

// AddDocument stores a link. Title (when empty) and type are derived from the
// URL here, once, and never recomputed.
func (s *DocumentStore) AddDocument(ctx context.Context, url, title string) (*entities.DocumentLink, error) {
	draft := entities.NewDocumentDraft(url, title)
	if err := draft.Validate(); err != nil {
		s.logger.Errorw("Error adding document", "error", err)
		return nil, fmt.Errorf("add document: %w", err)
	}

	owner, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		s.logger.Errorw("No current user", "operation", "add", "error", err)
		return nil, fmt.Errorf("add document: %w", err)
	}

	created, err := s.repo.Insert(ctx, owner, draft)
	s.metrics.ObserveRoundTrip("document", "add", err)
	if err != nil {
		s.logger.Errorw("Error adding document", "error", err, "user_id", owner, "url", draft.URL)
		return nil, fmt.Errorf("add document: %w", err)
	}

	s.mu.Lock()
	next := make([]entities.DocumentLink, 0, len(s.documents)+1)
	next = append(next, *created)
	next = append(next, s.documents...)
	s.documents = next
	s.mu.Unlock()

	s.logger.DocumentChange(owner, "document_added", created.ID, string(created.Type))
	return created, nil
}

func (s *DocumentStore) RemoveDocument(ctx context.Context, id string) error {
	owner, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		s.logger.Errorw("No current user", "operation", "remove", "error", err)
		return fmt.Errorf("remove document %s: %w", id, err)
	}

	err = s.repo.Delete(ctx, owner, id)
	s.metrics.ObserveRoundTrip("document", "remove", err)
	if err != nil {
		s.logger.Errorw("Error removing document", "error", err, "document_id", id, "user_id", owner)
		return fmt.Errorf("remove document %s: %w", id, err)
	}

	s.mu.Lock()
	next := make([]entities.DocumentLink, 0, len(s.documents))
	for _, d := range s.documents {
		if d.ID != id {
			next = append(next, d)
		}
	}
	s.documents = next
	s.mu.Unlock()

	s.logger.DocumentChange(owner, "document_removed", id, "")
	return nil
}
