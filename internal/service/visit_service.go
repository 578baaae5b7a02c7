package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-report-service/internal/authz"
	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/lifecycle"
	"github.com/spec-kit/sales-report-service/internal/repository"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// VisitService coordinates visit record workflows. Visits inherit ownership
// from their parent report and share its edit-lock.
type VisitService struct {
	visits    repository.VisitRepository
	reports   repository.ReportRepository
	customers repository.CustomerRepository
}

// VisitDependencies bundles repositories for the visit service.
type VisitDependencies struct {
	VisitRepo    repository.VisitRepository
	ReportRepo   repository.ReportRepository
	CustomerRepo repository.CustomerRepository
}

// NewVisitService constructs the service.
func NewVisitService(deps VisitDependencies) *VisitService {
	return &VisitService{
		visits:    deps.VisitRepo,
		reports:   deps.ReportRepo,
		customers: deps.CustomerRepo,
	}
}

// VisitCreateInput describes visit creation payload.
type VisitCreateInput struct {
	CustomerID   int64
	VisitContent string
	VisitOrder   *int
}

// VisitUpdateInput carries mutable visit fields; nil means unchanged.
type VisitUpdateInput struct {
	CustomerID   *int64
	VisitContent *string
	VisitOrder   *int
}

func (s *VisitService) parentRef(ctx context.Context, reportID int64) (domain.ReportRef, error) {
	ref, err := s.reports.GetRef(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ReportRef{}, apperrors.NewNotFound("report", nil)
		}
		return domain.ReportRef{}, err
	}
	return ref, nil
}

// ListVisits returns the visit records of a report the caller may read.
func (s *VisitService) ListVisits(ctx context.Context, id domain.Identity, reportID int64) ([]domain.VisitRecord, error) {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if d := authz.Can(id, authz.ActionRead, authz.VisitTarget(ref)); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}
	return s.visits.ListByReport(ctx, reportID)
}

// GetVisit fetches a single visit record.
func (s *VisitService) GetVisit(ctx context.Context, id domain.Identity, reportID, visitID int64) (*domain.VisitRecord, error) {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if d := authz.Can(id, authz.ActionRead, authz.VisitTarget(ref)); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	visit, err := s.visits.GetByID(ctx, visitID, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("visit record", nil)
		}
		return nil, err
	}
	return visit, nil
}

// CreateVisit appends a visit record to a draft report.
func (s *VisitService) CreateVisit(ctx context.Context, id domain.Identity, reportID int64, input VisitCreateInput) (*domain.VisitRecord, error) {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if d := lifecycle.AssertMutable(ref.Status); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}
	if d := authz.Can(id, authz.ActionCreate, authz.VisitTarget(ref)); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	exists, err := s.customers.Exists(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewValidationError("specified customer does not exist", nil)
	}

	order := 0
	if input.VisitOrder != nil {
		order = *input.VisitOrder
	}
	if order <= 0 {
		max, err := s.visits.MaxOrder(ctx, reportID)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}

	visit := &domain.VisitRecord{
		ReportID:     reportID,
		CustomerID:   input.CustomerID,
		VisitContent: input.VisitContent,
		VisitOrder:   order,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// UpdateVisit edits a visit record on a draft report.
func (s *VisitService) UpdateVisit(ctx context.Context, id domain.Identity, reportID, visitID int64, input VisitUpdateInput) (*domain.VisitRecord, error) {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if d := lifecycle.AssertMutable(ref.Status); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}
	if d := authz.Can(id, authz.ActionUpdate, authz.VisitTarget(ref)); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	visit, err := s.visits.GetByID(ctx, visitID, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("visit record", nil)
		}
		return nil, err
	}

	if input.CustomerID != nil {
		exists, err := s.customers.Exists(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationError("specified customer does not exist", nil)
		}
		visit.CustomerID = *input.CustomerID
	}
	if input.VisitContent != nil {
		visit.VisitContent = *input.VisitContent
	}
	if input.VisitOrder != nil && *input.VisitOrder > 0 {
		visit.VisitOrder = *input.VisitOrder
	}

	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// DeleteVisit removes a visit record from a draft report.
func (s *VisitService) DeleteVisit(ctx context.Context, id domain.Identity, reportID, visitID int64) error {
	ref, err := s.parentRef(ctx, reportID)
	if err != nil {
		return err
	}
	if d := lifecycle.AssertMutable(ref.Status); d.Denied() {
		return apperrors.FromDecision(d)
	}
	if d := authz.Can(id, authz.ActionDelete, authz.VisitTarget(ref)); d.Denied() {
		return apperrors.FromDecision(d)
	}

	if err := s.visits.Delete(ctx, visitID, reportID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("visit record", nil)
		}
		return err
	}
	return nil
}
