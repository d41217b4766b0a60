package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/ports"
)

// TaskModel is the sqlite row of a task.
type TaskModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"not null;index:idx_tasks_user_created,priority:1"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	Priority    string    `gorm:"type:varchar(10);not null"`
	Category    string    `gorm:"type:varchar(20);not null"`
	Status      string    `gorm:"type:varchar(20);not null"`
	Deadline    time.Time `gorm:"not null"`
	Progress    int       `gorm:"not null;default:0"`
	TimeSpent   int       `gorm:"not null;default:0"`
	Attachments []string  `gorm:"serializer:json"`
	CreatedAt   time.Time `gorm:"index:idx_tasks_user_created,priority:2,sort:desc"`
	UpdatedAt   time.Time
}

func (TaskModel) TableName() string { return "tasks" }

func (m *TaskModel) toEntity() entities.Task {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return entities.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    entities.Priority(m.Priority),
		Category:    entities.Category(m.Category),
		Status:      entities.TaskStatus(m.Status),
		Deadline:    m.Deadline.UTC(),
		Progress:    m.Progress,
		TimeSpent:   m.TimeSpent,
		Attachments: attachments,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// DocumentModel is the sqlite row of a document link.
type DocumentModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	URL       string `gorm:"not null"`
	Type      string `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
}

func (DocumentModel) TableName() string { return "documents" }

// Models lists the tables AutoMigrate must create.
func Models() []interface{} {
	return []interface{}{&TaskModel{}, &DocumentModel{}}
}

// GormTaskRepository stores tasks in the embedded sqlite database.
type GormTaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db, now: time.Now}
}

var _ ports.TaskRepository = (*GormTaskRepository)(nil)

func (r *GormTaskRepository) List(ctx context.Context, ownerID string) ([]entities.Task, error) {
	var rows []TaskModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]entities.Task, len(rows))
	for i := range rows {
		tasks[i] = rows[i].toEntity()
	}
	return tasks, nil
}

func (r *GormTaskRepository) Insert(ctx context.Context, ownerID string, draft entities.TaskDraft) (*entities.Task, error) {
	now := r.now().UTC()
	attachments := draft.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	row := &TaskModel{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    string(draft.Priority),
		Category:    string(draft.Category),
		Status:      string(draft.Status),
		Deadline:    draft.Deadline.UTC(),
		Progress:    draft.Progress,
		TimeSpent:   draft.TimeSpent,
		Attachments: append([]string{}, attachments...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	task := row.toEntity()
	return &task, nil
}

func (r *GormTaskRepository) Update(ctx context.Context, ownerID, id string, patch entities.TaskPatch) (*entities.Task, error) {
	var row TaskModel
	db := r.db.Session(&gorm.Session{NowFunc: func() time.Time { return r.now().UTC() }})
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&row).Error; err != nil {
			return err
		}

		updated := patch.Apply(row.toEntity())
		row.Title = updated.Title
		row.Description = updated.Description
		row.Priority = string(updated.Priority)
		row.Category = string(updated.Category)
		row.Status = string(updated.Status)
		row.Deadline = updated.Deadline.UTC()
		row.Progress = updated.Progress
		row.TimeSpent = updated.TimeSpent
		row.Attachments = updated.Attachments

		// Only the patched columns are written; UpdatedAt comes from NowFunc.
		columns := append(patch.Fields(), "updated_at")
		return tx.Model(&row).Where("user_id = ?", ownerID).Select(columns).Updates(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	task := row.toEntity()
	return &task, nil
}

func (r *GormTaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&TaskModel{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

// GormDocumentRepository stores document links in the embedded sqlite
// database.
type GormDocumentRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db, now: time.Now}
}

var _ ports.DocumentRepository = (*GormDocumentRepository)(nil)

func (r *GormDocumentRepository) List(ctx context.Context, ownerID string) ([]entities.DocumentLink, error) {
	var rows []DocumentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]entities.DocumentLink, len(rows))
	for i, row := range rows {
		docs[i] = entities.DocumentLink{
			ID:        row.ID,
			Title:     row.Title,
			URL:       row.URL,
			Type:      entities.DocumentType(row.Type),
			CreatedAt: row.CreatedAt.UTC(),
		}
	}
	return docs, nil
}

func (r *GormDocumentRepository) Insert(ctx context.Context, ownerID string, draft entities.DocumentDraft) (*entities.DocumentLink, error) {
	row := &DocumentModel{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Title:     draft.Title,
		URL:       draft.URL,
		Type:      string(draft.Type),
		CreatedAt: r.now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return &entities.DocumentLink{
		ID:        row.ID,
		Title:     row.Title,
		URL:       row.URL,
		Type:      entities.DocumentType(row.Type),
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *GormDocumentRepository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&DocumentModel{})
	if res.Error != nil {
		return fmt.Errorf("delete document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrDocumentNotFound
	}
	return nil
}
