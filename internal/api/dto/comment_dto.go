package dto

import (
	"time"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	CommentType    domain.CommentType `json:"comment_type"`
	CommentContent string             `json:"comment_content"`
}

// UpdateCommentRequest payload.
type UpdateCommentRequest struct {
	CommentContent string `json:"comment_content"`
}

// CommentResponse response.
type CommentResponse struct {
	CommentID      int64              `json:"comment_id"`
	ReportID       int64              `json:"report_id"`
	CommenterID    int64              `json:"commenter_id"`
	CommentType    domain.CommentType `json:"comment_type"`
	CommentContent string             `json:"comment_content"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
