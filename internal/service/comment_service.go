package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-report-service/internal/authz"
	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/events"
	"github.com/spec-kit/sales-report-service/internal/repository"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// CommentService coordinates comment workflows. Comments may be read and
// created by the report owner or any admin; edits stay with the author.
type CommentService struct {
	comments   repository.CommentRepository
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles repositories for the comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	ReportRepo  repository.ReportRepository
	Dispatcher  events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		reports:    deps.ReportRepo,
		dispatcher: deps.Dispatcher,
	}
}

func (s *CommentService) parentRef(ctx context.Context, reportID int64) (domain.ReportRef, error) {
	ref, err := s.reports.GetRef(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ReportRef{}, apperrors.NewNotFound("report", nil)
		}
		return domain.ReportRef{}, err
	}
	return ref, nil
}

// ListComments returns a report's comments, optionally filtered by type.
func (s *CommentService) ListComments(ctx context.Context, id domain.Identity, reportID int64, commentType *domain.CommentType) ([]domain.Comment, error) {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if d := authz.Can(id, authz.ActionRead, authz.CommentCreateTarget(ref)); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}
	return s.comments.ListByReport(ctx, reportID, commentType)
}

// GetComment fetches a single comment.
func (s *CommentService) GetComment(ctx context.Context, id domain.Identity, reportID, commentID int64) (*domain.Comment, error) {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if d := authz.Can(id, authz.ActionRead, authz.CommentCreateTarget(ref)); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	comment, err := s.comments.GetByID(ctx, commentID, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	return comment, nil
}

// CreateComment attaches a comment to a report.
func (s *CommentService) CreateComment(ctx context.Context, id domain.Identity, reportID int64, commentType domain.CommentType, content string) (*domain.Comment, error) {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if d := authz.Can(id, authz.ActionCreate, authz.CommentCreateTarget(ref)); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}
	if !commentType.Valid() {
		return nil, apperrors.NewValidationError("invalid comment type", nil)
	}

	comment := &domain.Comment{
		ReportID:       reportID,
		CommenterID:    id.SalesID,
		CommentType:    commentType,
		CommentContent: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCommentAdded,
			ReportID:  reportID,
			ActorID:   id.SalesID,
			Timestamp: time.Now(),
			Payload: events.CommentAddedPayload{
				CommentID:   comment.CommentID,
				ReportOwner: ref.SalesID,
				CommentType: comment.CommentType,
				BodyPreview: preview(comment.CommentContent, 120),
			},
		})
	}
	return comment, nil
}

// UpdateComment edits a comment's content. Authors only.
func (s *CommentService) UpdateComment(ctx context.Context, id domain.Identity, reportID, commentID int64, content string) (*domain.Comment, error) {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(ctx, commentID, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}

	if d := authz.Can(id, authz.ActionUpdate, authz.CommentTarget(ref, comment.CommenterID)); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	comment.CommentContent = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Authors and admins.
func (s *CommentService) DeleteComment(ctx context.Context, id domain.Identity, reportID, commentID int64) error {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return err
	}

	comment, err := s.comments.GetByID(ctx, commentID, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", nil)
		}
		return err
	}

	if d := authz.Can(id, authz.ActionDelete, authz.CommentTarget(ref, comment.CommenterID)); d.Denied() {
		return apperrors.FromDecision(d)
	}
	return s.comments.Delete(ctx, commentID, reportID)
}

// preview truncates to at most max runes, never splitting a multi-byte rune.
func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
