package controllers

import (
	"context"
	"fmt"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/ports"
)

// Location is a lane and a position inside it.
type Location struct {
	Bucket entities.TaskStatus `json:"bucket" validate:"required"`
	Index  int                 `json:"index" validate:"min=0"`
}

// DragEndEvent describes a finished drag on the board. Destination is nil
// when the drop was cancelled.
type DragEndEvent struct {
	TaskID      string    `json:"taskId" validate:"required"`
	Source      Location  `json:"source"`
	Destination *Location `json:"destination,omitempty"`
}

// Board moves tasks between lanes. Only the lane is persisted: the position
// within a lane follows collection order and is lost on reload.
type Board struct {
	tasks  ports.TaskStore
	logger *logger.Logger
}

func NewBoard(tasks ports.TaskStore, logger *logger.Logger) *Board {
	return &Board{tasks: tasks, logger: logger.WithComponent("board")}
}

// HandleDragEnd issues at most one status update. It reports whether a store
// call was made.
func (b *Board) HandleDragEnd(ctx context.Context, ev DragEndEvent) (bool, error) {
	if ev.Destination == nil {
		return false, nil
	}
	dest := *ev.Destination
	if dest.Bucket == ev.Source.Bucket && dest.Index == ev.Source.Index {
		return false, nil
	}
	if !dest.Bucket.IsValid() {
		return false, fmt.Errorf("%w: %q", entities.ErrInvalidStatus, dest.Bucket)
	}

	if _, ok := b.tasks.Get(ev.TaskID); !ok {
		b.logger.Warnw("Dropped task is not on the board", "task_id", ev.TaskID)
		return false, nil
	}

	if _, err := b.tasks.Update(ctx, ev.TaskID, entities.StatusPatch(dest.Bucket)); err != nil {
		return true, err
	}

	b.logger.Debugw("Task moved",
		"task_id", ev.TaskID,
		"from", ev.Source.Bucket,
		"to", dest.Bucket,
	)
	return true, nil
}

// DeleteTask removes a task from the board once c confirms.
func (b *Board) DeleteTask(ctx context.Context, id string, c Confirmer) error {
	if err := confirm(ctx, c, "Are you sure you want to delete this task?"); err != nil {
		return err
	}
	return b.tasks.Delete(ctx, id)
}
