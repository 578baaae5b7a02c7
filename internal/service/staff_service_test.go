package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/hierarchy"
	"github.com/spec-kit/sales-report-service/internal/repository"
)

type memStaffRepo struct {
	nextID int64
	staff  map[int64]*domain.SalesStaff
}

func newMemStaffRepo() *memStaffRepo {
	return &memStaffRepo{staff: make(map[int64]*domain.SalesStaff)}
}

func (r *memStaffRepo) seed(staff domain.SalesStaff) {
	if staff.SalesID > r.nextID {
		r.nextID = staff.SalesID
	}
	copied := staff
	r.staff[staff.SalesID] = &copied
}

func (r *memStaffRepo) Create(ctx context.Context, staff *domain.SalesStaff) error {
	r.nextID++
	staff.SalesID = r.nextID
	copied := *staff
	r.staff[staff.SalesID] = &copied
	return nil
}

func (r *memStaffRepo) Update(ctx context.Context, staff *domain.SalesStaff) error {
	stored, ok := r.staff[staff.SalesID]
	if !ok {
		return pgx.ErrNoRows
	}
	*stored = *staff
	return nil
}

func (r *memStaffRepo) Delete(ctx context.Context, salesID int64) error {
	if _, ok := r.staff[salesID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.staff, salesID)
	return nil
}

func (r *memStaffRepo) GetByID(ctx context.Context, salesID int64) (*domain.SalesStaff, error) {
	stored, ok := r.staff[salesID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *memStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.SalesStaff, error) {
	for _, stored := range r.staff {
		if stored.Email == email {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memStaffRepo) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, stored := range r.staff {
		if stored.Email == email && stored.SalesID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memStaffRepo) List(ctx context.Context, filter repository.StaffFilter) ([]domain.SalesStaff, error) {
	var result []domain.SalesStaff
	for _, stored := range r.staff {
		result = append(result, *stored)
	}
	return result, nil
}

func (r *memStaffRepo) Count(ctx context.Context, filter repository.StaffFilter) (int64, error) {
	return int64(len(r.staff)), nil
}

func (r *memStaffRepo) ListByManager(ctx context.Context, managerID int64) ([]domain.SalesStaff, error) {
	var result []domain.SalesStaff
	for _, stored := range r.staff {
		if stored.ManagerID != nil && *stored.ManagerID == managerID {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *memStaffRepo) CountByManager(ctx context.Context, managerID int64) (int64, error) {
	subs, _ := r.ListByManager(ctx, managerID)
	return int64(len(subs)), nil
}

// Staff population: 9 is the admin, 1 manages 3, 5 stands alone.
func newStaffFixture() (*StaffService, *memStaffRepo, *memStore) {
	staffRepo := newMemStaffRepo()
	managerID := int64(1)
	staffRepo.seed(domain.SalesStaff{SalesID: 9, Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin})
	staffRepo.seed(domain.SalesStaff{SalesID: 1, Name: "Manager", Email: "manager@example.com", Role: domain.RoleGeneral})
	staffRepo.seed(domain.SalesStaff{SalesID: 3, Name: "Member", Email: "member@example.com", Role: domain.RoleGeneral, ManagerID: &managerID})
	staffRepo.seed(domain.SalesStaff{SalesID: 5, Name: "Loner", Email: "loner@example.com", Role: domain.RoleGeneral})

	store := newMemStore()
	svc := NewStaffService(StaffDependencies{
		StaffRepo:  staffRepo,
		ReportRepo: &memReportRepo{store: store},
		Resolver:   hierarchy.NewResolver(repository.NewStaffDirectory(staffRepo)),
		BcryptCost: bcrypt.MinCost,
	})
	return svc, staffRepo, store
}

func TestStaffDeleteGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("general staff cannot delete", func(t *testing.T) {
		svc, _, _ := newStaffFixture()
		err := svc.DeleteStaff(ctx, owner, 5)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		svc, _, _ := newStaffFixture()
		err := svc.DeleteStaff(ctx, admin, admin.SalesID)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
	})

	t.Run("staff with subordinates cannot be deleted", func(t *testing.T) {
		svc, repo, _ := newStaffFixture()
		err := svc.DeleteStaff(ctx, admin, 1)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
		_, err = repo.GetByID(ctx, 1)
		require.NoError(t, err)
	})

	t.Run("staff with reports cannot be deleted", func(t *testing.T) {
		svc, _, store := newStaffFixture()
		store.reports[1] = &domain.DailyReport{
			ReportID:   1,
			SalesID:    5,
			ReportDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			Status:     domain.ReportStatusDraft,
		}
		err := svc.DeleteStaff(ctx, admin, 5)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
	})

	t.Run("unburdened staff can be deleted", func(t *testing.T) {
		svc, repo, _ := newStaffFixture()
		require.NoError(t, svc.DeleteStaff(ctx, admin, 3))
		_, err := repo.GetByID(ctx, 3)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("missing staff is NOT_FOUND", func(t *testing.T) {
		svc, _, _ := newStaffFixture()
		err := svc.DeleteStaff(ctx, admin, 9999)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}

func TestStaffManagerAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("assigning a subordinate as manager is rejected", func(t *testing.T) {
		svc, _, _ := newStaffFixture()
		subordinate := int64(3)
		_, err := svc.UpdateStaff(ctx, admin, 1, StaffUpdateInput{ManagerID: &subordinate, ManagerSet: true})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
	})

	t.Run("self as manager is rejected", func(t *testing.T) {
		svc, _, _ := newStaffFixture()
		self := int64(5)
		_, err := svc.UpdateStaff(ctx, admin, 5, StaffUpdateInput{ManagerID: &self, ManagerSet: true})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
	})

	t.Run("missing manager is rejected", func(t *testing.T) {
		svc, _, _ := newStaffFixture()
		missing := int64(9999)
		_, err := svc.UpdateStaff(ctx, admin, 5, StaffUpdateInput{ManagerID: &missing, ManagerSet: true})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
	})

	t.Run("valid assignment and clearing both work", func(t *testing.T) {
		svc, _, _ := newStaffFixture()
		manager := int64(1)
		updated, err := svc.UpdateStaff(ctx, admin, 5, StaffUpdateInput{ManagerID: &manager, ManagerSet: true})
		require.NoError(t, err)
		require.NotNil(t, updated.ManagerID)
		assert.EqualValues(t, 1, *updated.ManagerID)

		cleared, err := svc.UpdateStaff(ctx, admin, 5, StaffUpdateInput{ManagerSet: true})
		require.NoError(t, err)
		assert.Nil(t, cleared.ManagerID)
	})
}

func TestStaffCreateValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, _, _ := newStaffFixture()
		_, err := svc.CreateStaff(ctx, admin, StaffCreateInput{
			Name:     "Imposter",
			Email:    "manager@example.com",
			Password: "secret",
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
	})

	t.Run("role defaults to general", func(t *testing.T) {
		svc, _, _ := newStaffFixture()
		created, err := svc.CreateStaff(ctx, admin, StaffCreateInput{
			Name:     "Newcomer",
			Email:    "newcomer@example.com",
			Password: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleGeneral, created.Role)
		assert.NotEqual(t, "secret", created.PasswordHash)
	})
}
