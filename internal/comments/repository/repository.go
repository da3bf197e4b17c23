package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Comment is the database model for an import comment. Comments attach to a
// derived import through the (factory_id, import_id) composite key; the
// import itself is never persisted.
type Comment struct {
	ID        uuid.UUID `db:"id"`
	FactoryID uuid.UUID `db:"factory_id"`
	ImportID  string    `db:"import_id"`
	Comment   string    `db:"comment"`
	ImageKey  string    `db:"image_key"`
	UserID    uuid.UUID `db:"user_id"`
	UserName  string    `db:"user_name"`
	CreatedAt time.Time `db:"created_at"`
}

const commentNotFoundMsg = "comment not found"

const commentColumns = `id, factory_id, import_id, comment, image_key, user_id, user_name, created_at`

// Repository provides database operations for comments
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new comments repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByImport returns all comments of one import, oldest first.
func (r *Repository) ListByImport(ctx context.Context, factoryID uuid.UUID, importID string) ([]Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE factory_id = $1 AND import_id = $2 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, factoryID, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

// ListByFactory returns all comments across a factory's imports.
func (r *Repository) ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE factory_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

func collectComments(rows pgx.Rows) ([]Comment, error) {
	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.FactoryID, &c.ImportID, &c.Comment, &c.ImageKey, &c.UserID, &c.UserName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	return comments, nil
}

// CountByImport returns per-import comment counts for one factory.
func (r *Repository) CountByImport(ctx context.Context, factoryID uuid.UUID) (map[string]int, error) {
	query := `SELECT import_id, count(*) FROM comments WHERE factory_id = $1 GROUP BY import_id`

	rows, err := r.pool.Query(ctx, query, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var importID string
		var count int
		if err := rows.Scan(&importID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan comment count: %w", err)
		}
		counts[importID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comment counts: %w", err)
	}
	return counts, nil
}

// Create inserts a new comment.
func (r *Repository) Create(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, factory_id, import_id, comment, image_key, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.pool.Exec(ctx, query,
		c.ID, c.FactoryID, c.ImportID, c.Comment, c.ImageKey, c.UserID, c.UserName, c.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var c Comment
	err := r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id).Scan(
		&c.ID, &c.FactoryID, &c.ImportID, &c.Comment, &c.ImageKey, &c.UserID, &c.UserName, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(commentNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

// Delete removes a comment.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(commentNotFoundMsg)
	}
	return nil
}
