package ports

import (
	"context"

	"github.com/jobtasks/dashboard/internal/domain/entities"
)

// TaskRepository is the persistence boundary for tasks. Every call is scoped
// to ownerID; the store of record assigns ids and timestamps and returns the
// authoritative row.
type TaskRepository interface {
	List(ctx context.Context, ownerID string) ([]entities.Task, error)
	Insert(ctx context.Context, ownerID string, draft entities.TaskDraft) (*entities.Task, error)
	Update(ctx context.Context, ownerID, id string, patch entities.TaskPatch) (*entities.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// DocumentRepository is the persistence boundary for document links. There
// is no update: links are immutable.
type DocumentRepository interface {
	List(ctx context.Context, ownerID string) ([]entities.DocumentLink, error)
	Insert(ctx context.Context, ownerID string, draft entities.DocumentDraft) (*entities.DocumentLink, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// IdentityProvider yields the id of the authenticated user.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// CalendarSource is a read-only, token-gated event feed.
type CalendarSource interface {
	Upcoming(ctx context.Context, accessToken string) ([]entities.CalendarEvent, error)
}
