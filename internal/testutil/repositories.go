// Package testutil provides in-memory stand-ins for the persistence boundary.
// They behave like the store of record (assigning ids and timestamps, scoping
// rows by owner) and let tests inject failures.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jobtasks/dashboard/internal/domain/entities"
)

// UpdateCall records one Update round trip.
type UpdateCall struct {
	Owner string
	ID    string
	Patch entities.TaskPatch
}

// TaskRepository is an in-memory ports.TaskRepository. Set one of the *Err
// fields to make the matching call fail without touching any row.
type TaskRepository struct {
	mu    sync.Mutex
	seq   int
	rows  []ownedTask
	clock func() time.Time

	ListErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error

	Inserts     int
	UpdateCalls []UpdateCall
	Deletes     int
}

type ownedTask struct {
	owner string
	task  entities.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{clock: time.Now}
}

// SetClock fixes the timestamps the repository assigns.
func (r *TaskRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = now
}

// Seed stores rows directly, bypassing call counters.
func (r *TaskRepository) Seed(owner string, tasks ...entities.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tasks {
		r.rows = append([]ownedTask{{owner: owner, task: t.Clone()}}, r.rows...)
	}
}

func (r *TaskRepository) List(ctx context.Context, ownerID string) ([]entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ListErr != nil {
		return nil, r.ListErr
	}
	var out []entities.Task
	for _, row := range r.rows {
		if row.owner == ownerID {
			out = append(out, row.task.Clone())
		}
	}
	return out, nil
}

func (r *TaskRepository) Insert(ctx context.Context, ownerID string, draft entities.TaskDraft) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Inserts++
	if r.InsertErr != nil {
		return nil, r.InsertErr
	}

	r.seq++
	now := r.clock().UTC()
	task := entities.Task{
		ID:          fmt.Sprintf("task-%d", r.seq),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Category:    draft.Category,
		Status:      draft.Status,
		Deadline:    draft.Deadline,
		Progress:    draft.Progress,
		TimeSpent:   draft.TimeSpent,
		Attachments: append([]string{}, draft.Attachments...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.rows = append([]ownedTask{{owner: ownerID, task: task}}, r.rows...)

	out := task.Clone()
	return &out, nil
}

func (r *TaskRepository) Update(ctx context.Context, ownerID, id string, patch entities.TaskPatch) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UpdateCalls = append(r.UpdateCalls, UpdateCall{Owner: ownerID, ID: id, Patch: patch})
	if r.UpdateErr != nil {
		return nil, r.UpdateErr
	}

	for i, row := range r.rows {
		if row.owner == ownerID && row.task.ID == id {
			updated := patch.Apply(row.task)
			updated.UpdatedAt = r.clock().UTC()
			r.rows[i].task = updated
			out := updated.Clone()
			return &out, nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Deletes++
	if r.DeleteErr != nil {
		return r.DeleteErr
	}

	for i, row := range r.rows {
		if row.owner == ownerID && row.task.ID == id {
			r.rows = append(r.rows[:i:i], r.rows[i+1:]...)
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

// DocumentRepository is an in-memory ports.DocumentRepository.
type DocumentRepository struct {
	mu   sync.Mutex
	seq  int
	rows []ownedDocument

	ListErr   error
	InsertErr error
	DeleteErr error

	Inserts int
	Deletes int
}

type ownedDocument struct {
	owner string
	doc   entities.DocumentLink
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) List(ctx context.Context, ownerID string) ([]entities.DocumentLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ListErr != nil {
		return nil, r.ListErr
	}
	var out []entities.DocumentLink
	for _, row := range r.rows {
		if row.owner == ownerID {
			out = append(out, row.doc)
		}
	}
	return out, nil
}

func (r *DocumentRepository) Insert(ctx context.Context, ownerID string, draft entities.DocumentDraft) (*entities.DocumentLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Inserts++
	if r.InsertErr != nil {
		return nil, r.InsertErr
	}

	r.seq++
	doc := entities.DocumentLink{
		ID:        fmt.Sprintf("doc-%d", r.seq),
		Title:     draft.Title,
		URL:       draft.URL,
		Type:      draft.Type,
		CreatedAt: time.Now().UTC(),
	}
	r.rows = append([]ownedDocument{{owner: ownerID, doc: doc}}, r.rows...)
	return &doc, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Deletes++
	if r.DeleteErr != nil {
		return r.DeleteErr
	}

	for i, row := range r.rows {
		if row.owner == ownerID && row.doc.ID == id {
			r.rows = append(r.rows[:i:i], r.rows[i+1:]...)
			return nil
		}
	}
	return entities.ErrDocumentNotFound
}
