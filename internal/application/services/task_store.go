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

// TaskStore owns the current user's task collection. Every mutation is
// confirmed by the repository before it is reflected locally, so the
// collection is never ahead of the store of record. The collection is
// replaced wholesale on each change and never edited in place.
type TaskStore struct {
	repo     ports.TaskRepository
	identity ports.IdentityProvider
	logger   *logger.Logger
	metrics  *metrics.Metrics

	mu    sync.RWMutex
	tasks []entities.Task
}

// NewTaskStore creates an empty task store. Call Load to populate it.
func NewTaskStore(repo ports.TaskRepository, identity ports.IdentityProvider, logger *logger.Logger, m *metrics.Metrics) *TaskStore {
	return &TaskStore{
		repo:     repo,
		identity: identity,
		logger:   logger.WithComponent("task_store"),
		metrics:  m,
		tasks:    []entities.Task{},
	}
}

// Tasks returns a copy of the collection, newest first.
func (s *TaskStore) Tasks() []entities.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the local copy of a task.
func (s *TaskStore) Get(id string) (entities.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return entities.Task{}, false
}

// Load fetches every task of the current user and replaces the collection.
// On failure the previous collection is kept.
func (s *TaskStore) Load(ctx context.Context) error {
	owner, err := s.owner(ctx, "load")
	if err != nil {
		return err
	}

	tasks, err := s.repo.List(ctx, owner)
	s.metrics.ObserveRoundTrip("task", "load", err)
	if err != nil {
		s.logger.Errorw("Error loading tasks", "error", err, "user_id", owner)
		return fmt.Errorf("load tasks: %w", err)
	}

	if tasks == nil {
		tasks = []entities.Task{}
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	s.logger.Debugw("Tasks loaded", "user_id", owner, "count", len(tasks))
	return nil
}

// Add inserts a task tagged with the current user and prepends the record
// the repository returned.
func (s *TaskStore) Add(ctx context.Context, draft entities.TaskDraft) (*entities.Task, error) {
	if err := draft.Validate(); err != nil {
		s.logger.Errorw("Error adding task", "error", err)
		return nil, fmt.Errorf("add task: %w", err)
	}

	owner, err := s.owner(ctx, "add")
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, owner, draft)
	s.metrics.ObserveRoundTrip("task", "add", err)
	if err != nil {
		s.logger.Errorw("Error adding task", "error", err, "user_id", owner)
		return nil, fmt.Errorf("add task: %w", err)
	}

	s.mu.Lock()
	next := make([]entities.Task, 0, len(s.tasks)+1)
	next = append(next, created.Clone())
	next = append(next, s.tasks...)
	s.tasks = next
	s.mu.Unlock()

	s.logger.TaskChange(owner, "task_added", created.ID, nil)
	return created, nil
}

// Update sends only the fields set in patch. The local record is replaced by
// the full record the repository returned.
func (s *TaskStore) Update(ctx context.Context, id string, patch entities.TaskPatch) (*entities.Task, error) {
	if err := patch.Validate(); err != nil {
		s.logger.Errorw("Error updating task", "error", err, "task_id", id)
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}

	owner, err := s.owner(ctx, "update")
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, owner, id, patch)
	s.metrics.ObserveRoundTrip("task", "update", err)
	if err != nil {
		s.logger.Errorw("Error updating task", "error", err, "task_id", id, "user_id", owner)
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}

	s.mu.Lock()
	next := make([]entities.Task, len(s.tasks))
	for i, t := range s.tasks {
		if t.ID == id {
			next[i] = updated.Clone()
		} else {
			next[i] = t
		}
	}
	s.tasks = next
	s.mu.Unlock()

	s.logger.TaskChange(owner, "task_updated", id, patch.Fields())
	return updated, nil
}

// Delete removes the task remotely, then locally.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	owner, err := s.owner(ctx, "delete")
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, owner, id)
	s.metrics.ObserveRoundTrip("task", "delete", err)
	if err != nil {
		s.logger.Errorw("Error deleting task", "error", err, "task_id", id, "user_id", owner)
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	s.mu.Lock()
	next := make([]entities.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	s.tasks = next
	s.mu.Unlock()

	s.logger.TaskChange(owner, "task_deleted", id, nil)
	return nil
}

func (s *TaskStore) owner(ctx context.Context, op string) (string, error) {
	owner, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		s.logger.Errorw("No current user", "operation", op, "error", err)
		return "", fmt.Errorf("%s task: %w", op, err)
	}
	return owner, nil
}
