package ports

import (
	"context"

	"github.com/jobtasks/dashboard/internal/domain/entities"
)

// TaskStore mediates between UI events and persisted tasks.
type TaskStore interface {
	Tasks() []entities.Task
	Get(id string) (entities.Task, bool)
	Load(ctx context.Context) error
	Add(ctx context.Context, draft entities.TaskDraft) (*entities.Task, error)
	Update(ctx context.Context, id string, patch entities.TaskPatch) (*entities.Task, error)
	Delete(ctx context.Context, id string) error
}

// DocumentStore mediates between UI events and persisted document links.
type DocumentStore interface {
	Documents() []entities.DocumentLink
	Load(ctx context.Context) error
	AddDocument(ctx context.Context, url, title string) (*entities.DocumentLink, error)
	RemoveDocument(ctx context.Context, id string) error
}
