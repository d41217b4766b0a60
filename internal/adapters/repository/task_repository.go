package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/ports"
)

const taskColumns = `id, title, description, priority, category, status, deadline,
	progress, time_spent, attachments, created_at, updated_at`

// taskRow mirrors one row of the tasks table.
type taskRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Priority    string         `db:"priority"`
	Category    string         `db:"category"`
	Status      string         `db:"status"`
	Deadline    time.Time      `db:"deadline"`
	Progress    int            `db:"progress"`
	TimeSpent   int            `db:"time_spent"`
	Attachments pq.StringArray `db:"attachments"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *taskRow) toEntity() *entities.Task {
	attachments := []string(r.Attachments)
	if attachments == nil {
		attachments = []string{}
	}
	return &entities.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    entities.Priority(r.Priority),
		Category:    entities.Category(r.Category),
		Status:      entities.TaskStatus(r.Status),
		Deadline:    r.Deadline.UTC(),
		Progress:    r.Progress,
		TimeSpent:   r.TimeSpent,
		Attachments: attachments,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

// TaskRepositoryImpl stores tasks in PostgreSQL. Every statement is scoped
// to the owning user.
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) List(ctx context.Context, ownerID string) ([]entities.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]entities.Task, len(rows))
	for i := range rows {
		tasks[i] = *rows[i].toEntity()
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) Insert(ctx context.Context, ownerID string, draft entities.TaskDraft) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, priority, category, status,
			deadline, progress, time_spent, attachments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + taskColumns

	attachments := draft.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	var row taskRow
	err := r.db.QueryRowxContext(ctx, query,
		ownerID, draft.Title, draft.Description, draft.Priority, draft.Category,
		draft.Status, draft.Deadline, draft.Progress, draft.TimeSpent,
		pq.StringArray(attachments),
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return row.toEntity(), nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, ownerID, id string, patch entities.TaskPatch) (*entities.Task, error) {
	if !isUUID(id) {
		return nil, entities.ErrTaskNotFound
	}
	query, args := buildTaskUpdate(ownerID, id, patch)

	var row taskRow
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return row.toEntity(), nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, ownerID, id string) error {
	if !isUUID(id) {
		return entities.ErrTaskNotFound
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

// buildTaskUpdate writes an UPDATE that touches only the columns set in
// patch, plus updated_at.
func buildTaskUpdate(ownerID, id string, patch entities.TaskPatch) (string, []interface{}) {
	var sets []string
	var args []interface{}

	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Priority != nil {
		set("priority", string(*patch.Priority))
	}
	if patch.Category != nil {
		set("category", string(*patch.Category))
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.Deadline != nil {
		set("deadline", patch.Deadline.UTC())
	}
	if patch.Progress != nil {
		set("progress", *patch.Progress)
	}
	if patch.TimeSpent != nil {
		set("time_spent", *patch.TimeSpent)
	}
	if patch.Attachments != nil {
		attachments := *patch.Attachments
		if attachments == nil {
			attachments = []string{}
		}
		set("attachments", pq.StringArray(attachments))
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id, ownerID)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), taskColumns)
	return query, args
}

// isUUID guards the uuid id column: postgres rejects a malformed literal
// instead of matching nothing.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
