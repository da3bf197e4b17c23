package adapters

import (
	"context"

	commentsvc "github.com/gustavo-devfull/fabricas-sub000/internal/comments/service"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/ports"

	"github.com/google/uuid"
)

// CommentCounterAdapter exposes the comments module's per-import counts
// for the view's comment badges.
type CommentCounterAdapter struct {
	svc *commentsvc.Service
}

// NewCommentCounter wraps the comments service.
func NewCommentCounter(svc *commentsvc.Service) *CommentCounterAdapter {
	return &CommentCounterAdapter{svc: svc}
}

// CountByImport returns per-import comment counts for one factory.
func (a *CommentCounterAdapter) CountByImport(ctx context.Context, factoryID uuid.UUID) (map[string]int, error) {
	return a.svc.CountByImport(ctx, factoryID)
}

var _ ports.CommentCounter = (*CommentCounterAdapter)(nil)
