// Package exports implements spreadsheet export jobs: an admin requests a
// workbook of the aggregated view, a background worker generates it with
// excelize and uploads it to object storage, and the admin downloads it
// through a presigned URL.
package exports

import (
	"context"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters/storage"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	"github.com/gustavo-devfull/fabricas-sub000/platform/apperr"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"

	"github.com/google/uuid"
)

// Scheduler enqueues spreadsheet generation for a job.
type Scheduler interface {
	EnqueueSpreadsheetExport(ctx context.Context, jobID uuid.UUID) error
}

// Service implements the API side of export jobs: enqueueing and status.
type Service struct {
	repo      *Repository
	scheduler Scheduler
	storage   storage.StorageService
	bucket    string
	eventBus  events.Bus
	log       *logger.Logger
}

// NewService creates a new export jobs service
func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// SetScheduler injects the background job client.
func (s *Service) SetScheduler(scheduler Scheduler) {
	s.scheduler = scheduler
}

// SetStorage injects the object storage holding generated workbooks.
func (s *Service) SetStorage(svc storage.StorageService, bucket string) {
	s.storage = svc
	s.bucket = bucket
}

// SetEventBus injects the event bus for publishing domain events.
func (s *Service) SetEventBus(bus events.Bus) {
	s.eventBus = bus
}

// CreateParams holds the fields for a new export request.
type CreateParams struct {
	FactoryID   *uuid.UUID
	NotifyEmail string
	RequestedBy string
}

// Create registers a pending job and enqueues its generation. The job is
// marked failed immediately when enqueueing is impossible, so it never
// sits pending forever.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Job, error) {
	if s.scheduler == nil {
		return nil, apperr.Internal("background exports are not configured")
	}

	now := time.Now().UTC()
	job := &Job{
		ID:          uuid.New(),
		Status:      StatusPending,
		FactoryID:   params.FactoryID,
		RequestedBy: params.RequestedBy,
		NotifyEmail: params.NotifyEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, err
	}

	if err := s.scheduler.EnqueueSpreadsheetExport(ctx, job.ID); err != nil {
		s.log.Error("failed to enqueue export job", "jobId", job.ID, "error", err)
		if markErr := s.repo.MarkFailed(ctx, job.ID, "failed to enqueue generation"); markErr != nil {
			s.log.Error("failed to mark export job failed", "jobId", job.ID, "error", markErr)
		}
		return nil, apperr.Internal("failed to enqueue export job")
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.SpreadsheetExportRequested{
			BaseEvent:   events.NewBaseEvent(),
			JobID:       job.ID,
			RequestedBy: job.RequestedBy,
		})
	}
	return job, nil
}

// GetByID retrieves a job by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the most recent jobs.
func (s *Service) List(ctx context.Context, limit int) ([]Job, error) {
	return s.repo.List(ctx, limit)
}

// DownloadURL resolves a presigned URL for a completed job's workbook.
func (s *Service) DownloadURL(ctx context.Context, id uuid.UUID) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, apperr.Internal("export storage is not configured")
	}

	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != StatusCompleted || job.ObjectKey == "" {
		return nil, apperr.Conflict("export job has not completed yet")
	}
	return s.storage.GenerateDownloadURL(ctx, s.bucket, job.ObjectKey)
}
