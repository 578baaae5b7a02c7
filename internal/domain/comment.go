package domain

import "time"

// CommentType enumerates the kinds of feedback a comment carries.
type CommentType string

const (
	CommentTypeFeedback CommentType = "FEEDBACK"
	CommentTypeAdvice   CommentType = "ADVICE"
	CommentTypeQuestion CommentType = "QUESTION"
)

// Valid reports whether the comment type is a known value.
func (t CommentType) Valid() bool {
	return t == CommentTypeFeedback || t == CommentTypeAdvice || t == CommentTypeQuestion
}

// Comment is a remark attached to a daily report by its owner or an admin.
type Comment struct {
	CommentID      int64
	ReportID       int64
	CommenterID    int64
	CommentType    CommentType
	CommentContent string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
