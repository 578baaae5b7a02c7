package hierarchy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

type memoryDirectory struct {
	staff map[int64]*domain.SalesStaff
}

func (d *memoryDirectory) GetByID(_ context.Context, salesID int64) (*domain.SalesStaff, error) {
	s, ok := d.staff[salesID]
	if !ok {
		return nil, ErrStaffNotFound
	}
	return s, nil
}

func (d *memoryDirectory) ListByManager(_ context.Context, managerID int64) ([]domain.SalesStaff, error) {
	var out []domain.SalesStaff
	for _, s := range d.staff {
		if s.ManagerID != nil && *s.ManagerID == managerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func ref(id int64) *int64 { return &id }

func fixture() *memoryDirectory {
	// 3 manages 5 and 6; 1 manages 3.
	return &memoryDirectory{staff: map[int64]*domain.SalesStaff{
		1: {SalesID: 1, Role: domain.RoleAdmin},
		3: {SalesID: 3, Role: domain.RoleGeneral, ManagerID: ref(1)},
		5: {SalesID: 5, Role: domain.RoleGeneral, ManagerID: ref(3)},
		6: {SalesID: 6, Role: domain.RoleGeneral, ManagerID: ref(3)},
	}}
}

func TestDirectSubordinates(t *testing.T) {
	r := NewResolver(fixture())

	ids, err := r.DirectSubordinates(context.Background(), 3)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{5, 6}, ids)

	// Single level only: 1 does not see 3's subordinates.
	ids, err = r.DirectSubordinates(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{3}, ids)

	ids, err = r.DirectSubordinates(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestIsDirectManagerOf(t *testing.T) {
	r := NewResolver(fixture())

	ok, err := r.IsDirectManagerOf(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	// Non-symmetric.
	ok, err = r.IsDirectManagerOf(context.Background(), 5, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	// Grandmanager is not a direct manager.
	ok, err = r.IsDirectManagerOf(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateManagerAssignment(t *testing.T) {
	r := NewResolver(fixture())
	ctx := context.Background()

	d, err := r.ValidateManagerAssignment(ctx, 5, 1)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	t.Run("self as manager", func(t *testing.T) {
		d, err := r.ValidateManagerAssignment(ctx, 5, 5)
		require.NoError(t, err)
		require.False(t, d.Allowed)
		assert.Equal(t, domain.DenyValidation, d.Reason)
	})

	t.Run("missing manager", func(t *testing.T) {
		d, err := r.ValidateManagerAssignment(ctx, 5, 99)
		require.NoError(t, err)
		require.False(t, d.Allowed)
		assert.Equal(t, domain.DenyValidation, d.Reason)
	})

	t.Run("direct cycle", func(t *testing.T) {
		// 3 manages 5; making 5 manage 3 closes the loop.
		d, err := r.ValidateManagerAssignment(ctx, 3, 5)
		require.NoError(t, err)
		require.False(t, d.Allowed)
		assert.Equal(t, domain.DenyValidation, d.Reason)
	})

	t.Run("indirect cycle", func(t *testing.T) {
		// 1 -> 3 -> 5; making 1 report to 5 loops through two levels.
		d, err := r.ValidateManagerAssignment(ctx, 1, 5)
		require.NoError(t, err)
		require.False(t, d.Allowed)
		assert.Equal(t, domain.DenyValidation, d.Reason)
	})
}
