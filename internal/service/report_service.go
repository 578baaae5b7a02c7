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
	"github.com/spec-kit/sales-report-service/internal/lifecycle"
	"github.com/spec-kit/sales-report-service/internal/repository"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// ReportService coordinates daily report workflows: authorization, lifecycle
// checks, persistence, and event publication.
type ReportService struct {
	reports    repository.ReportRepository
	visits     repository.VisitRepository
	comments   repository.CommentRepository
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// ReportDependencies bundles repositories for the report service.
type ReportDependencies struct {
	ReportRepo   repository.ReportRepository
	VisitRepo    repository.VisitRepository
	CommentRepo  repository.CommentRepository
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:    deps.ReportRepo,
		visits:     deps.VisitRepo,
		comments:   deps.CommentRepo,
		customers:  deps.CustomerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ReportCreateInput describes report creation payload.
type ReportCreateInput struct {
	ReportDate time.Time
	Problem    *string
	Plan       *string
	Status     domain.ReportStatus
	Visits     []repository.VisitSeed
}

// ReportUpdateInput carries the mutable report body fields; nil means leave
// the field unchanged.
type ReportUpdateInput struct {
	Problem *string
	Plan    *string
}

// ReportListFilter describes report listing parameters.
type ReportListFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Status   *domain.ReportStatus
	Page     int
	Limit    int
}

// CreateReport creates a report (and optional initial visits) for the caller.
func (s *ReportService) CreateReport(ctx context.Context, id domain.Identity, input ReportCreateInput) (*domain.DailyReport, []domain.VisitRecord, error) {
	status := input.Status
	if status == "" {
		status = domain.ReportStatusDraft
	}
	if !status.Valid() {
		return nil, nil, apperrors.NewValidationError("invalid report status", nil)
	}

	for _, visit := range input.Visits {
		exists, err := s.customers.Exists(ctx, visit.CustomerID)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			return nil, nil, apperrors.NewValidationError("specified customer does not exist", map[string]any{"customer_id": visit.CustomerID})
		}
	}

	report := &domain.DailyReport{
		SalesID:    id.SalesID,
		ReportDate: input.ReportDate,
		Problem:    input.Problem,
		Plan:       input.Plan,
		Status:     status,
	}

	if err := s.reports.CreateWithVisits(ctx, report, input.Visits); err != nil {
		if errors.Is(err, repository.ErrDuplicateReportDate) {
			return nil, nil, apperrors.NewValidationError("a report already exists for this date", nil)
		}
		return nil, nil, err
	}

	records, err := s.visits.ListByReport(ctx, report.ReportID)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventReportCreated,
		ReportID: report.ReportID,
		ActorID:  id.SalesID,
		Payload: events.ReportCreatedPayload{
			OwnerID:    report.SalesID,
			ReportDate: report.ReportDate.Format("2006-01-02"),
			Status:     report.Status,
			VisitCount: len(records),
		},
	})
	return report, records, nil
}

// ListReports returns reports visible to the caller. General staff are
// silently scoped to their own reports; admins see everything.
func (s *ReportService) ListReports(ctx context.Context, id domain.Identity, filter ReportListFilter) ([]domain.DailyReport, int64, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	repoFilter := repository.ReportFilter{
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		Status:   filter.Status,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	if !id.IsAdmin() {
		salesID := id.SalesID
		repoFilter.SalesID = &salesID
	}

	total, err := s.reports.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	reports, err := s.reports.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// GetReport fetches a report with its visits and comments, enforcing access.
func (s *ReportService) GetReport(ctx context.Context, id domain.Identity, reportID int64) (*domain.DailyReport, []domain.VisitRecord, []domain.Comment, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, apperrors.NewNotFound("report", nil)
		}
		return nil, nil, nil, err
	}

	if d := authz.Can(id, authz.ActionRead, authz.ReportTarget(report.Ref())); d.Denied() {
		return nil, nil, nil, apperrors.FromDecision(d)
	}

	visits, err := s.visits.ListByReport(ctx, report.ReportID)
	if err != nil {
		return nil, nil, nil, err
	}
	comments, err := s.comments.ListByReport(ctx, report.ReportID, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return report, visits, comments, nil
}

// UpdateReport edits the problem/plan body of a draft report.
func (s *ReportService) UpdateReport(ctx context.Context, id domain.Identity, reportID int64, input ReportUpdateInput) (*domain.DailyReport, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", nil)
		}
		return nil, err
	}

	// The edit-lock applies to everyone; it is checked before ownership.
	if d := lifecycle.AssertMutable(report.Status); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}
	if d := authz.Can(id, authz.ActionUpdate, authz.ReportTarget(report.Ref())); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	if input.Problem != nil {
		report.Problem = input.Problem
	}
	if input.Plan != nil {
		report.Plan = input.Plan
	}

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// UpdateStatus applies a lifecycle transition to the report.
func (s *ReportService) UpdateStatus(ctx context.Context, id domain.Identity, reportID int64, requested domain.ReportStatus) (*domain.DailyReport, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", nil)
		}
		return nil, err
	}

	isOwner := report.SalesID == id.SalesID
	if d := lifecycle.CanTransition(report.Status, requested, isOwner, id.IsAdmin()); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	oldStatus := report.Status
	if err := s.reports.UpdateStatus(ctx, report.ReportID, oldStatus, requested); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, apperrors.NewConflict("report status changed concurrently", nil)
		}
		return nil, err
	}
	report.Status = requested

	s.publish(ctx, events.Event{
		Type:     events.EventReportStatusChanged,
		ReportID: report.ReportID,
		ActorID:  id.SalesID,
		Payload: events.ReportStatusChangedPayload{
			OwnerID:   report.SalesID,
			OldStatus: oldStatus,
			NewStatus: requested,
		},
	})
	return report, nil
}

// DeleteReport removes a draft report together with its children.
func (s *ReportService) DeleteReport(ctx context.Context, id domain.Identity, reportID int64) error {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("report", nil)
		}
		return err
	}

	isOwner := report.SalesID == id.SalesID
	if d := lifecycle.CanDelete(report.Status, isOwner); d.Denied() {
		return apperrors.FromDecision(d)
	}

	if err := s.reports.Delete(ctx, report.ReportID); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventReportDeleted,
		ReportID: report.ReportID,
		ActorID:  id.SalesID,
		Payload:  events.ReportDeletedPayload{OwnerID: report.SalesID},
	})
	return nil
}

func (s *ReportService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
