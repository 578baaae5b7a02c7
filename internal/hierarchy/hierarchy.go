// Package hierarchy resolves the staff management chain. Aggregation is
// single level: a subordinate is a staff member whose manager_id points
// directly at the manager, not the transitive closure. Manager assignment
// validation walks the full chain so no write can close a cycle.
package hierarchy

import (
	"context"
	"errors"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// ErrStaffNotFound is returned when a chain lookup misses.
var ErrStaffNotFound = errors.New("staff not found")

// StaffDirectory is the read-only staff lookup the resolver consults. The
// persistence layer supplies the implementation.
type StaffDirectory interface {
	GetByID(ctx context.Context, salesID int64) (*domain.SalesStaff, error)
	ListByManager(ctx context.Context, managerID int64) ([]domain.SalesStaff, error)
}

// Resolver answers management-chain questions.
type Resolver struct {
	staff StaffDirectory
}

// NewResolver constructs a resolver over the given directory.
func NewResolver(staff StaffDirectory) *Resolver {
	return &Resolver{staff: staff}
}

// DirectSubordinates returns the ids of staff whose manager is staffID.
func (r *Resolver) DirectSubordinates(ctx context.Context, staffID int64) ([]int64, error) {
	subs, err := r.staff.ListByManager(ctx, staffID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.SalesID)
	}
	return ids, nil
}

// IsDirectManagerOf reports whether managerID is staffID's direct manager.
// The relation is one level and non-symmetric.
func (r *Resolver) IsDirectManagerOf(ctx context.Context, managerID, staffID int64) (bool, error) {
	staff, err := r.staff.GetByID(ctx, staffID)
	if err != nil {
		return false, err
	}
	return staff.ManagerID != nil && *staff.ManagerID == managerID, nil
}

// ValidateManagerAssignment checks a prospective manager_id write for
// staffID. It rejects self-assignment, a missing manager, and any assignment
// that would close a cycle through the manager chain.
func (r *Resolver) ValidateManagerAssignment(ctx context.Context, staffID, managerID int64) (domain.Decision, error) {
	if managerID == staffID {
		return domain.Deny(domain.DenyValidation, "staff cannot be their own manager"), nil
	}

	if _, err := r.staff.GetByID(ctx, managerID); err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return domain.Deny(domain.DenyValidation, "specified manager does not exist"), nil
		}
		return domain.Decision{}, err
	}

	// Walk upward from the prospective manager. Reaching staffID means the
	// assignment would make the chain circular.
	seen := map[int64]struct{}{staffID: {}}
	current := managerID
	for {
		if _, dup := seen[current]; dup && current != staffID {
			// Pre-existing loop above the manager; refuse to attach to it.
			return domain.Deny(domain.DenyValidation, "manager chain is circular"), nil
		}
		seen[current] = struct{}{}

		staff, err := r.staff.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, ErrStaffNotFound) {
				break
			}
			return domain.Decision{}, err
		}
		if staff.ManagerID == nil {
			break
		}
		if *staff.ManagerID == staffID {
			return domain.Deny(domain.DenyValidation, "assignment would create a management cycle"), nil
		}
		current = *staff.ManagerID
	}
	return domain.Allow(), nil
}
