package http

import (
	"github.com/jobtasks/dashboard/internal/application/views"
	"github.com/jobtasks/dashboard/internal/domain/entities"
)

// UserContextKey is where the auth middleware stores the current user id.
const UserContextKey = "user"

// PatchTaskRequest is a sparse task update. Absent fields are left alone.
type PatchTaskRequest struct {
	Title       *string              `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string              `json:"description,omitempty" validate:"omitempty,max=5000"`
	Priority    *entities.Priority   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Category    *entities.Category   `json:"category,omitempty" validate:"omitempty,oneof=design research documents"`
	Status      *entities.TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=todo in-progress completed"`
	Deadline    *string              `json:"deadline,omitempty"`
	Progress    *int                 `json:"progress,omitempty" validate:"omitempty,min=0,max=100"`
	TimeSpent   *int                 `json:"timeSpent,omitempty" validate:"omitempty,min=0"`
	Attachments *[]string            `json:"attachments,omitempty"`
}

// Patch converts the request, normalising the deadline to UTC midnight.
func (r *PatchTaskRequest) Patch() (entities.TaskPatch, error) {
	patch := entities.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Category:    r.Category,
		Status:      r.Status,
		Progress:    r.Progress,
		TimeSpent:   r.TimeSpent,
		Attachments: r.Attachments,
	}
	if r.Deadline != nil {
		deadline, err := entities.ParseDeadline(*r.Deadline)
		if err != nil {
			return entities.TaskPatch{}, err
		}
		patch.Deadline = &deadline
	}
	return patch, nil
}

// AddDocumentRequest links a document. Title is optional.
type AddDocumentRequest struct {
	URL   string `json:"url" validate:"required,url"`
	Title string `json:"title" validate:"max=200"`
}

// MoveResponse reports whether a drag changed anything, with the board after
// the move.
type MoveResponse struct {
	Moved bool        `json:"moved"`
	Board views.Board `json:"board"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}
