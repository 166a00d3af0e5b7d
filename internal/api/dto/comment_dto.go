package dto

import (
	"time"

	"github.com/spec-kit/sla-service/internal/domain"
)

// CreateCommentRequest payload. Progress optionally ties the comment to a
// specific month's record.
type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required"`
	Progress *string `json:"progress"`
}

// ProgressRef carries the month of a referenced progress record.
type ProgressRef struct {
	ID    string    `json:"id"`
	Month time.Time `json:"month"`
}

// CommentResponse is the wire shape of a comment with its read-time joins.
type CommentResponse struct {
	ID        string       `json:"id"`
	SLA       string       `json:"sla"`
	User      *UserRef     `json:"user,omitempty"`
	Content   string       `json:"content"`
	Progress  *ProgressRef `json:"progress,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// NewCommentResponse maps a comment with its resolved references.
func NewCommentResponse(comment *domain.Comment, author *domain.User, progress *domain.Progress) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		SLA:       comment.SLAID,
		User:      NewUserRef(author),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if progress != nil {
		resp.Progress = &ProgressRef{ID: progress.ID, Month: progress.Month}
	}
	return resp
}
