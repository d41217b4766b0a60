package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/ports"
)

type documentRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *documentRow) toEntity() entities.DocumentLink {
	return entities.DocumentLink{
		ID:        r.ID,
		Title:     r.Title,
		URL:       r.URL,
		Type:      entities.DocumentType(r.Type),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// DocumentRepositoryImpl stores document links in PostgreSQL.
type DocumentRepositoryImpl struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) ports.DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) List(ctx context.Context, ownerID string) ([]entities.DocumentLink, error) {
	query := `
		SELECT id, title, url, type, created_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var rows []documentRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]entities.DocumentLink, len(rows))
	for i := range rows {
		docs[i] = rows[i].toEntity()
	}
	return docs, nil
}

func (r *DocumentRepositoryImpl) Insert(ctx context.Context, ownerID string, draft entities.DocumentDraft) (*entities.DocumentLink, error) {
	query := `
		INSERT INTO documents (user_id, title, url, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, url, type, created_at`

	var row documentRow
	err := r.db.QueryRowxContext(ctx, query, ownerID, draft.Title, draft.URL, string(draft.Type)).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	doc := row.toEntity()
	return &doc, nil
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, ownerID, id string) error {
	if !isUUID(id) {
		return entities.ErrDocumentNotFound
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrDocumentNotFound
	}
	return nil
}
