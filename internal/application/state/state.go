// Package state wires the stores and controllers of one user together.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jobtasks/dashboard/internal/adapters/auth"
	"github.com/jobtasks/dashboard/internal/application/controllers"
	"github.com/jobtasks/dashboard/internal/application/services"
	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/infrastructure/metrics"
	"github.com/jobtasks/dashboard/internal/ports"
)

// AppState is everything one signed-in user works with. It is passed by
// reference to whatever serves that user.
type AppState struct {
	UserID    string
	Tasks     *services.TaskStore
	Documents *services.DocumentStore
	Board     *controllers.Board
	Links     *controllers.Documents

	logger *logger.Logger
}

// New builds the state of userID. The stores start empty; call Load.
func New(userID string, tasks ports.TaskRepository, docs ports.DocumentRepository, log *logger.Logger, m *metrics.Metrics) *AppState {
	identity := auth.StaticIdentity(userID)
	log = log.WithUserID(userID)

	taskStore := services.NewTaskStore(tasks, identity, log, m)
	docStore := services.NewDocumentStore(docs, identity, log, m)

	return &AppState{
		UserID:    userID,
		Tasks:     taskStore,
		Documents: docStore,
		Board:     controllers.NewBoard(taskStore, log),
		Links:     controllers.NewDocuments(docStore),
		logger:    log,
	}
}

// Load fills both stores independently. A failing store keeps its previous
// contents; the errors of both are joined.
func (s *AppState) Load(ctx context.Context) error {
	taskErr := s.Tasks.Load(ctx)
	docErr := s.Documents.Load(ctx)
	return errors.Join(taskErr, docErr)
}

// Editor opens an editor on the task with id, or on a new task when id is
// empty.
func (s *AppState) Editor(id string, now func() time.Time) (*controllers.Editor, error) {
	if id == "" {
		return controllers.NewEditor(s.Tasks, s.logger, nil, now()), nil
	}
	task, ok := s.Tasks.Get(id)
	if !ok {
		return nil, fmt.Errorf("open editor on %s: %w", id, entities.ErrTaskNotFound)
	}
	return controllers.NewEditor(s.Tasks, s.logger, &task, now()), nil
}

// Registry keeps one AppState per user, loading it on first use.
type Registry struct {
	tasks   ports.TaskRepository
	docs    ports.DocumentRepository
	logger  *logger.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	states map[string]*entry
}

// entry is closed once the first load of its state has finished.
type entry struct {
	state  *AppState
	loaded chan struct{}
}

func NewRegistry(tasks ports.TaskRepository, docs ports.DocumentRepository, log *logger.Logger, m *metrics.Metrics) *Registry {
	return &Registry{
		tasks:   tasks,
		docs:    docs,
		logger:  log,
		metrics: m,
		states:  make(map[string]*entry),
	}
}

// For returns the state of userID, loading it on first use. A store that
// fails that first load stays empty and is logged; the state is cached
// anyway so the other store is served and a refresh can retry. Concurrent
// first calls for the same user wait for one load. The error is only set
// when ctx ends while waiting.
func (r *Registry) For(ctx context.Context, userID string) (*AppState, error) {
	r.mu.Lock()
	e, ok := r.states[userID]
	if !ok {
		e = &entry{
			state:  New(userID, r.tasks, r.docs, r.logger, r.metrics),
			loaded: make(chan struct{}),
		}
		r.states[userID] = e
	}
	r.mu.Unlock()

	if !ok {
		if err := e.state.Load(ctx); err != nil {
			r.logger.WithUserID(userID).WithError(err).Warn("Initial load incomplete")
		}
		close(e.loaded)
		return e.state, nil
	}

	select {
	case <-e.loaded:
		return e.state, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Forget drops the cached state of userID.
func (r *Registry) Forget(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, userID)
}
