package transport

import (
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/comments/repository"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateCommentRequest is the request body for commenting on an import.
type CreateCommentRequest struct {
	FactoryID uuid.UUID `json:"factoryId" validate:"required"`
	ImportID  string    `json:"importId" validate:"required,max=16"`
	Comment   string    `json:"comment" validate:"omitempty,max=4000"`
	ImageKey  string    `json:"imageKey" validate:"omitempty,max=1000"`
}

// PresignImageRequest is the request body for a comment image upload URL.
type PresignImageRequest struct {
	FactoryID   uuid.UUID `json:"factoryId" validate:"required"`
	ImportID    string    `json:"importId" validate:"required,max=16"`
	FileName    string    `json:"fileName" validate:"required,max=500"`
	ContentType string    `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64     `json:"sizeBytes" validate:"required,min=1"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// CommentResponse is the API representation of a comment.
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	FactoryID uuid.UUID `json:"factoryId"`
	ImportID  string    `json:"importId"`
	Comment   string    `json:"comment"`
	ImageKey  string    `json:"imageKey,omitempty"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCommentResponse maps a stored comment to its API representation.
func ToCommentResponse(c repository.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		FactoryID: c.FactoryID,
		ImportID:  c.ImportID,
		Comment:   c.Comment,
		ImageKey:  c.ImageKey,
		UserID:    c.UserID,
		UserName:  c.UserName,
		CreatedAt: c.CreatedAt,
	}
}

// ToCommentResponses maps a slice of stored comments.
func ToCommentResponses(comments []repository.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, ToCommentResponse(c))
	}
	return out
}
