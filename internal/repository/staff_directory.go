package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/hierarchy"
)

// staffDirectory adapts the staff repository to the hierarchy resolver's
// lookup contract, translating row misses into the resolver's sentinel.
type staffDirectory struct {
	staff StaffRepository
}

// NewStaffDirectory wraps a staff repository for hierarchy resolution.
func NewStaffDirectory(staff StaffRepository) hierarchy.StaffDirectory {
	return &staffDirectory{staff: staff}
}

func (d *staffDirectory) GetByID(ctx context.Context, salesID int64) (*domain.SalesStaff, error) {
	staff, err := d.staff.GetByID(ctx, salesID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hierarchy.ErrStaffNotFound
		}
		return nil, err
	}
	return staff, nil
}

func (d *staffDirectory) ListByManager(ctx context.Context, managerID int64) ([]domain.SalesStaff, error) {
	return d.staff.ListByManager(ctx, managerID)
}
