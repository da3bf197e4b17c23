package service

import (
	"context"
	"strings"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters/storage"
	"github.com/gustavo-devfull/fabricas-sub000/internal/comments/repository"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	"github.com/gustavo-devfull/fabricas-sub000/platform/apperr"

	"github.com/google/uuid"
)

// Service implements the comments domain logic.
type Service struct {
	repo        *repository.Repository
	storageSvc  storage.StorageService
	imageBucket string
	eventBus    events.Bus
}

// New creates a new comments service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus for publishing domain events.
func (s *Service) SetEventBus(bus events.Bus) {
	s.eventBus = bus
}

// SetStorage injects the object storage used for comment images.
func (s *Service) SetStorage(svc storage.StorageService, bucket string) {
	s.storageSvc = svc
	s.imageBucket = bucket
}

// CreateParams holds the fields for a new comment. ImageKey is the object
// key returned by the presigned-upload flow, empty when no image attached.
type CreateParams struct {
	FactoryID uuid.UUID
	ImportID  string
	Comment   string
	ImageKey  string
	UserID    uuid.UUID
	UserName  string
}

// Create stores a comment against an import and publishes CommentAdded.
func (s *Service) Create(ctx context.Context, params CreateParams) (*repository.Comment, error) {
	if strings.TrimSpace(params.Comment) == "" && params.ImageKey == "" {
		return nil, apperr.Validation("comment text or image is required")
	}

	comment := &repository.Comment{
		ID:        uuid.New(),
		FactoryID: params.FactoryID,
		ImportID:  params.ImportID,
		Comment:   strings.TrimSpace(params.Comment),
		ImageKey:  params.ImageKey,
		UserID:    params.UserID,
		UserName:  params.UserName,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.CommentAdded{
			BaseEvent:  events.NewBaseEvent(),
			CommentID:  comment.ID,
			FactoryID:  comment.FactoryID,
			ImportID:   comment.ImportID,
			AuthorName: comment.UserName,
		})
	}
	return comment, nil
}

// ListByImport returns one import's comments.
func (s *Service) ListByImport(ctx context.Context, factoryID uuid.UUID, importID string) ([]repository.Comment, error) {
	return s.repo.ListByImport(ctx, factoryID, importID)
}

// ListByFactory returns all comments across a factory's imports.
func (s *Service) ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]repository.Comment, error) {
	return s.repo.ListByFactory(ctx, factoryID)
}

// CountByImport returns per-import comment counts for one factory.
func (s *Service) CountByImport(ctx context.Context, factoryID uuid.UUID) (map[string]int, error) {
	return s.repo.CountByImport(ctx, factoryID)
}

// Delete removes a comment, deleting its image object when one exists.
// Authors may delete their own comments; admins may delete any.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && comment.UserID != userID {
		return apperr.Forbidden("only the author or an admin can delete a comment")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if comment.ImageKey != "" && s.storageSvc != nil {
		// Best effort; an orphaned image is not worth failing the delete.
		_ = s.storageSvc.DeleteObject(ctx, s.imageBucket, comment.ImageKey)
	}
	return nil
}

// PresignImageUpload creates a presigned upload URL for a comment image.
func (s *Service) PresignImageUpload(ctx context.Context, factoryID uuid.UUID, importID, fileName, contentType string, sizeBytes int64) (*storage.PresignedURL, error) {
	if s.storageSvc == nil {
		return nil, apperr.Internal("image storage is not configured")
	}
	if !storage.IsImageContentType(contentType) {
		return nil, apperr.Validation("comment attachments must be images")
	}
	folder := factoryID.String() + "/" + importID
	return s.storageSvc.GenerateUploadURL(ctx, s.imageBucket, folder, fileName, contentType, sizeBytes)
}

// ImageDownloadURL resolves a presigned download URL for a stored image key.
func (s *Service) ImageDownloadURL(ctx context.Context, imageKey string) (*storage.PresignedURL, error) {
	if s.storageSvc == nil {
		return nil, apperr.Internal("image storage is not configured")
	}
	return s.storageSvc.GenerateDownloadURL(ctx, s.imageBucket, imageKey)
}
