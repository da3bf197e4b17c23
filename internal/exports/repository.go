package exports

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

// Job statuses. A job moves pending → processing → completed or failed.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job is the database model for a spreadsheet export job.
type Job struct {
	ID           uuid.UUID  `db:"id"`
	Status       string     `db:"status"`
	FactoryID    *uuid.UUID `db:"factory_id"`
	ObjectKey    string     `db:"object_key"`
	RequestedBy  string     `db:"requested_by"`
	NotifyEmail  string     `db:"notify_email"`
	ErrorMessage string     `db:"error_message"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	CompletedAt  *time.Time `db:"completed_at"`
}

const jobNotFoundMsg = "export job not found"

const jobColumns = `id, status, factory_id, object_key, requested_by, notify_email, error_message, created_at, updated_at, completed_at`

// Repository provides data access for export jobs.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Status, &j.FactoryID, &j.ObjectKey, &j.RequestedBy, &j.NotifyEmail, &j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt, &j.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create inserts a new pending job.
func (r *Repository) Create(ctx context.Context, j *Job) error {
	query := `
		INSERT INTO export_jobs (id, status, factory_id, object_key, requested_by, notify_email, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := r.pool.Exec(ctx, query,
		j.ID, j.Status, j.FactoryID, j.ObjectKey, j.RequestedBy, j.NotifyEmail, j.ErrorMessage, j.CreatedAt, j.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert export job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM export_jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(jobNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get export job: %w", err)
	}
	return job, nil
}

// List returns the most recent jobs, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Job, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `SELECT `+jobColumns+` FROM export_jobs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list export jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Status, &j.FactoryID, &j.ObjectKey, &j.RequestedBy, &j.NotifyEmail, &j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt, &j.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export jobs: %w", err)
	}
	return jobs, nil
}

// MarkProcessing transitions a job to processing.
func (r *Repository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, StatusProcessing, "", "")
}

// MarkCompleted stores the uploaded object key and completes the job.
func (r *Repository) MarkCompleted(ctx context.Context, id uuid.UUID, objectKey string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE export_jobs SET
			status = $2,
			object_key = $3,
			error_message = '',
			completed_at = now(),
			updated_at = now()
		WHERE id = $1`, id, StatusCompleted, objectKey)
	if err != nil {
		return fmt.Errorf("failed to complete export job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMsg)
	}
	return nil
}

// MarkFailed records the failure reason.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.setStatus(ctx, id, StatusFailed, "", reason)
}

func (r *Repository) setStatus(ctx context.Context, id uuid.UUID, status, objectKey, errorMessage string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE export_jobs SET
			status = $2,
			object_key = COALESCE(NULLIF($3, ''), object_key),
			error_message = $4,
			updated_at = now()
		WHERE id = $1`, id, status, objectKey, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to update export job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMsg)
	}
	return nil
}
