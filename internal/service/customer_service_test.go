package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sales-report-service/internal/repository"
)

func TestCustomerDeleteBlockedByVisitRecords(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.reports.CreateReport(ctx, owner, ReportCreateInput{
		ReportDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Visits:     []repository.VisitSeed{{CustomerID: 100, Content: "quarterly check-in"}},
	})
	require.NoError(t, err)

	t.Run("referenced customer cannot be deleted", func(t *testing.T) {
		err := f.customers.DeleteCustomer(ctx, admin, 100)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
	})

	t.Run("unreferenced customer can be deleted", func(t *testing.T) {
		require.NoError(t, f.customers.DeleteCustomer(ctx, admin, 101))
	})

	t.Run("general staff cannot delete at all", func(t *testing.T) {
		err := f.customers.DeleteCustomer(ctx, owner, 101)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})
}
