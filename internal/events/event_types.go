package events

import (
	"time"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportCreated       EventType = "report_created"
	EventReportStatusChanged EventType = "report_status_changed"
	EventReportDeleted       EventType = "report_deleted"
	EventCommentAdded        EventType = "comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ReportID  int64       `json:"report_id"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	OwnerID    int64               `json:"owner_id"`
	ReportDate string              `json:"report_date"`
	Status     domain.ReportStatus `json:"status"`
	VisitCount int                 `json:"visit_count"`
}

// ReportStatusChangedPayload payload.
type ReportStatusChangedPayload struct {
	OwnerID   int64               `json:"owner_id"`
	OldStatus domain.ReportStatus `json:"old_status"`
	NewStatus domain.ReportStatus `json:"new_status"`
}

// ReportDeletedPayload payload.
type ReportDeletedPayload struct {
	OwnerID int64 `json:"owner_id"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   int64              `json:"comment_id"`
	ReportOwner int64              `json:"report_owner"`
	CommentType domain.CommentType `json:"comment_type"`
	BodyPreview string             `json:"body_preview"`
}
