package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-report-service/internal/auth"
	"github.com/spec-kit/sales-report-service/internal/authz"
	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/hierarchy"
	"github.com/spec-kit/sales-report-service/internal/repository"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// StaffService manages sales staff master data. Every operation, reads
// included, is admin-only. Manager assignments are validated against the
// hierarchy resolver before any write.
type StaffService struct {
	staff      repository.StaffRepository
	reports    repository.ReportRepository
	resolver   *hierarchy.Resolver
	bcryptCost int
}

// StaffDependencies bundles requirements for the staff service.
type StaffDependencies struct {
	StaffRepo  repository.StaffRepository
	ReportRepo repository.ReportRepository
	Resolver   *hierarchy.Resolver
	BcryptCost int
}

// NewStaffService constructs the service.
func NewStaffService(deps StaffDependencies) *StaffService {
	return &StaffService{
		staff:      deps.StaffRepo,
		reports:    deps.ReportRepo,
		resolver:   deps.Resolver,
		bcryptCost: deps.BcryptCost,
	}
}

// StaffCreateInput describes staff creation payload.
type StaffCreateInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	Position   string
	Role       domain.StaffRole
	ManagerID  *int64
}

// StaffUpdateInput carries mutable staff fields; nil means unchanged.
// ManagerSet distinguishes "leave manager alone" from "clear the manager".
type StaffUpdateInput struct {
	Name       *string
	Email      *string
	Password   *string
	Department *string
	Position   *string
	Role       *domain.StaffRole
	ManagerID  *int64
	ManagerSet bool
}

// StaffListFilter describes staff listing parameters.
type StaffListFilter struct {
	Search     *string
	Department *string
	Role       *domain.StaffRole
	Page       int
	Limit      int
}

// StaffDetail is a staff member with resolved manager and subordinates.
type StaffDetail struct {
	Staff        *domain.SalesStaff
	Manager      *domain.SalesStaff
	Subordinates []domain.SalesStaff
}

// ListStaff returns paginated staff. Admin only.
func (s *StaffService) ListStaff(ctx context.Context, id domain.Identity, filter StaffListFilter) ([]domain.SalesStaff, int64, error) {
	if d := authz.Can(id, authz.ActionRead, authz.StaffTarget()); d.Denied() {
		return nil, 0, apperrors.FromDecision(d)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	repoFilter := repository.StaffFilter{
		Search:     filter.Search,
		Department: filter.Department,
		Role:       filter.Role,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	total, err := s.staff.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	staff, err := s.staff.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	return staff, total, nil
}

// GetStaff fetches a staff member with manager and direct subordinates.
func (s *StaffService) GetStaff(ctx context.Context, id domain.Identity, salesID int64) (*StaffDetail, error) {
	if d := authz.Can(id, authz.ActionRead, authz.StaffTarget()); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	staff, err := s.staff.GetByID(ctx, salesID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", nil)
		}
		return nil, err
	}

	detail := &StaffDetail{Staff: staff}
	if staff.ManagerID != nil {
		manager, err := s.staff.GetByID(ctx, *staff.ManagerID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		detail.Manager = manager
	}

	subs, err := s.staff.ListByManager(ctx, salesID)
	if err != nil {
		return nil, err
	}
	detail.Subordinates = subs
	return detail, nil
}

// CreateStaff adds a staff member. Admin only.
func (s *StaffService) CreateStaff(ctx context.Context, id domain.Identity, input StaffCreateInput) (*domain.SalesStaff, error) {
	if d := authz.Can(id, authz.ActionCreate, authz.StaffTarget()); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	inUse, err := s.staff.EmailInUse(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, apperrors.NewValidationError("email address is already in use", nil)
	}

	if input.ManagerID != nil {
		if _, err := s.staff.GetByID(ctx, *input.ManagerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("specified manager does not exist", nil)
			}
			return nil, err
		}
	}

	role := input.Role
	if role == "" {
		role = domain.RoleGeneral
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.SalesStaff{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Department:   input.Department,
		Position:     input.Position,
		Role:         role,
		ManagerID:    input.ManagerID,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdateStaff edits a staff member. Admin only.
func (s *StaffService) UpdateStaff(ctx context.Context, id domain.Identity, salesID int64, input StaffUpdateInput) (*domain.SalesStaff, error) {
	if d := authz.Can(id, authz.ActionUpdate, authz.StaffTarget()); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	staff, err := s.staff.GetByID(ctx, salesID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", nil)
		}
		return nil, err
	}

	if input.Email != nil {
		inUse, err := s.staff.EmailInUse(ctx, *input.Email, salesID)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, apperrors.NewValidationError("email address is already in use", nil)
		}
		staff.Email = *input.Email
	}

	if input.ManagerSet {
		if input.ManagerID != nil {
			// The resolver is the authority on manager writes: it rejects
			// self-assignment and anything that would close a cycle.
			d, err := s.resolver.ValidateManagerAssignment(ctx, salesID, *input.ManagerID)
			if err != nil {
				return nil, err
			}
			if d.Denied() {
				return nil, apperrors.FromDecision(d)
			}
		}
		staff.ManagerID = input.ManagerID
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		staff.PasswordHash = hash
	}
	if input.Department != nil {
		staff.Department = *input.Department
	}
	if input.Position != nil {
		staff.Position = *input.Position
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", nil)
		}
		staff.Role = *input.Role
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DeleteStaff removes a staff member. Admin only; never self; blocked while
// the member still has reports or direct subordinates.
func (s *StaffService) DeleteStaff(ctx context.Context, id domain.Identity, salesID int64) error {
	if d := authz.Can(id, authz.ActionDelete, authz.StaffTarget()); d.Denied() {
		return apperrors.FromDecision(d)
	}
	if salesID == id.SalesID {
		return apperrors.NewValidationError("staff cannot delete themselves", nil)
	}

	if _, err := s.staff.GetByID(ctx, salesID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("staff", nil)
		}
		return err
	}

	target := salesID
	reportCount, err := s.reports.Count(ctx, repository.ReportFilter{SalesID: &target})
	if err != nil {
		return err
	}
	if reportCount > 0 {
		return apperrors.NewValidationError("staff with existing reports cannot be deleted", nil)
	}

	subordinates, err := s.staff.CountByManager(ctx, salesID)
	if err != nil {
		return err
	}
	if subordinates > 0 {
		return apperrors.NewValidationError("staff with subordinates cannot be deleted", nil)
	}

	return s.staff.Delete(ctx, salesID)
}
