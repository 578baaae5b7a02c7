package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-report-service/internal/authz"
	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/repository"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// CustomerService manages customer master data. Any authenticated staff may
// read; mutation is admin-only.
type CustomerService struct {
	customers repository.CustomerRepository
	visits    repository.VisitRepository
}

// CustomerDependencies bundles repositories for the customer service.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	VisitRepo    repository.VisitRepository
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{customers: deps.CustomerRepo, visits: deps.VisitRepo}
}

// CustomerInput describes customer create/update payloads.
type CustomerInput struct {
	CustomerName string
	CompanyName  string
	Department   string
	Phone        string
	Email        string
	Address      string
}

// CustomerListFilter describes customer listing parameters.
type CustomerListFilter struct {
	Search *string
	Page   int
	Limit  int
}

// ListCustomers returns paginated customers.
func (s *CustomerService) ListCustomers(ctx context.Context, id domain.Identity, filter CustomerListFilter) ([]domain.Customer, int64, error) {
	if d := authz.Can(id, authz.ActionRead, authz.CustomerTarget()); d.Denied() {
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
	repoFilter := repository.CustomerFilter{
		Search: filter.Search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	total, err := s.customers.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	customers, err := s.customers.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// GetCustomer fetches a customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id domain.Identity, customerID int64) (*domain.Customer, error) {
	if d := authz.Can(id, authz.ActionRead, authz.CustomerTarget()); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", nil)
		}
		return nil, err
	}
	return customer, nil
}

// CreateCustomer adds master data. Admin only.
func (s *CustomerService) CreateCustomer(ctx context.Context, id domain.Identity, input CustomerInput) (*domain.Customer, error) {
	if d := authz.Can(id, authz.ActionCreate, authz.CustomerTarget()); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	customer := &domain.Customer{
		CustomerName: input.CustomerName,
		CompanyName:  input.CompanyName,
		Department:   input.Department,
		Phone:        input.Phone,
		Email:        input.Email,
		Address:      input.Address,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer edits master data. Admin only.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id domain.Identity, customerID int64, input CustomerInput) (*domain.Customer, error) {
	if d := authz.Can(id, authz.ActionUpdate, authz.CustomerTarget()); d.Denied() {
		return nil, apperrors.FromDecision(d)
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", nil)
		}
		return nil, err
	}

	customer.CustomerName = input.CustomerName
	customer.CompanyName = input.CompanyName
	customer.Department = input.Department
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.Address = input.Address

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes master data. Admin only; a customer referenced by
// visit records cannot be deleted.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id domain.Identity, customerID int64) error {
	if d := authz.Can(id, authz.ActionDelete, authz.CustomerTarget()); d.Denied() {
		return apperrors.FromDecision(d)
	}

	refs, err := s.visits.CountByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperrors.NewValidationError("customer with existing visit records cannot be deleted", nil)
	}

	if err := s.customers.Delete(ctx, customerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer", nil)
		}
		return err
	}
	return nil
}
