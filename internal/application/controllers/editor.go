package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/ports"
)

// Draft is the editable form state. Deadline is a plain date as typed by the
// user; it is normalised on submit.
type Draft struct {
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=5000"`
	Priority    entities.Priority   `json:"priority" validate:"required,oneof=low medium high"`
	Category    entities.Category   `json:"category" validate:"required,oneof=design research documents"`
	Status      entities.TaskStatus `json:"status" validate:"required,oneof=todo in-progress completed"`
	Deadline    string              `json:"deadline" validate:"required"`
	Progress    int                 `json:"progress" validate:"min=0,max=100"`
	TimeSpent   int                 `json:"timeSpent" validate:"min=0"`
	Attachments []string            `json:"attachments"`
}

// DraftFrom builds form state from a task draft.
func DraftFrom(d entities.TaskDraft) Draft {
	return Draft{
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Category:    d.Category,
		Status:      d.Status,
		Deadline:    d.Deadline.UTC().Format(entities.DateLayout),
		Progress:    d.Progress,
		TimeSpent:   d.TimeSpent,
		Attachments: append([]string{}, d.Attachments...),
	}
}

// Attach appends attachment URLs.
func (d *Draft) Attach(urls ...string) {
	d.Attachments = append(d.Attachments, urls...)
}

// TaskDraft normalises the deadline to UTC midnight of the typed date.
func (d *Draft) TaskDraft() (entities.TaskDraft, error) {
	deadline, err := entities.ParseDeadline(d.Deadline)
	if err != nil {
		return entities.TaskDraft{}, err
	}
	attachments := d.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return entities.TaskDraft{
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Category:    d.Category,
		Status:      d.Status,
		Deadline:    deadline,
		Progress:    d.Progress,
		TimeSpent:   d.TimeSpent,
		Attachments: append([]string{}, attachments...),
	}, nil
}

// Editor holds one draft, either for a new task or for an existing one.
type Editor struct {
	tasks    ports.TaskStore
	logger   *logger.Logger
	original *entities.Task

	Draft Draft
}

// NewEditor opens the editor on task, or on a blank draft with defaults when
// task is nil.
func NewEditor(tasks ports.TaskStore, logger *logger.Logger, task *entities.Task, now time.Time) *Editor {
	e := &Editor{tasks: tasks, logger: logger.WithComponent("editor")}
	if task != nil {
		original := task.Clone()
		e.original = &original
		e.Draft = DraftFrom(original.Draft())
	} else {
		e.Draft = DraftFrom(entities.NewTaskDraft(now))
	}
	return e
}

// IsNew reports whether submitting will create a task.
func (e *Editor) IsNew() bool {
	return e.original == nil
}

// Submit saves the draft. An existing task receives only the fields that
// changed; if nothing changed no store call is made and the original is
// returned.
func (e *Editor) Submit(ctx context.Context) (*entities.Task, error) {
	draft, err := e.Draft.TaskDraft()
	if err != nil {
		return nil, err
	}

	if e.original == nil {
		if err := draft.Validate(); err != nil {
			return nil, err
		}
		created, err := e.tasks.Add(ctx, draft)
		if err != nil {
			return nil, err
		}
		e.original = ptrTo(created.Clone())
		return created, nil
	}

	patch := draft.Diff(*e.original)
	if patch.IsEmpty() {
		out := e.original.Clone()
		return &out, nil
	}

	updated, err := e.tasks.Update(ctx, e.original.ID, patch)
	if err != nil {
		return nil, err
	}
	e.original = ptrTo(updated.Clone())
	e.logger.Debugw("Task saved", "task_id", updated.ID, "fields", patch.Fields())
	return updated, nil
}

// Delete removes the edited task once c confirms. A declined or missing
// confirmation makes no store call.
func (e *Editor) Delete(ctx context.Context, c Confirmer) error {
	if e.original == nil {
		return ErrNothingToDelete
	}
	if err := confirm(ctx, c, fmt.Sprintf("Are you sure you want to delete %q?", e.original.Title)); err != nil {
		return err
	}
	return e.tasks.Delete(ctx, e.original.ID)
}

func ptrTo(t entities.Task) *entities.Task {
	return &t
}
