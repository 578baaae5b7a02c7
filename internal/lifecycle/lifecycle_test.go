package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name      string
		current   domain.ReportStatus
		requested domain.ReportStatus
		isOwner   bool
		isAdmin   bool
		allowed   bool
		reason    domain.DenyReason
	}{
		{"owner submits draft", domain.ReportStatusDraft, domain.ReportStatusSubmitted, true, false, true, ""},
		{"admin submits someone else's draft", domain.ReportStatusDraft, domain.ReportStatusSubmitted, false, true, false, domain.DenyForbidden},
		{"non-owner submits draft", domain.ReportStatusDraft, domain.ReportStatusSubmitted, false, false, false, domain.DenyForbidden},
		{"owner reverts submitted", domain.ReportStatusSubmitted, domain.ReportStatusDraft, true, false, true, ""},
		{"admin reverts submitted", domain.ReportStatusSubmitted, domain.ReportStatusDraft, false, true, true, ""},
		{"non-owner reverts submitted", domain.ReportStatusSubmitted, domain.ReportStatusDraft, false, false, false, domain.DenyForbidden},
		{"submit twice", domain.ReportStatusSubmitted, domain.ReportStatusSubmitted, true, false, false, domain.DenyValidation},
		{"revert a draft", domain.ReportStatusDraft, domain.ReportStatusDraft, true, true, false, domain.DenyValidation},
		{"unknown target status", domain.ReportStatusDraft, domain.ReportStatus("ARCHIVED"), true, true, false, domain.DenyValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanTransition(tt.current, tt.requested, tt.isOwner, tt.isAdmin)
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.reason, d.Reason)
			}
		})
	}
}

// Same-state transitions are rejected for every caller; a double submit is
// never silently accepted.
func TestSameStateIsNeverANoOp(t *testing.T) {
	for _, owner := range []bool{true, false} {
		for _, adm := range []bool{true, false} {
			d := CanTransition(domain.ReportStatusSubmitted, domain.ReportStatusSubmitted, owner, adm)
			require.False(t, d.Allowed)
			assert.Equal(t, domain.DenyValidation, d.Reason)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// DRAFT -> SUBMITTED -> DRAFT -> SUBMITTED: the cycle is always
	// re-enterable from DRAFT.
	require.True(t, CanTransition(domain.ReportStatusDraft, domain.ReportStatusSubmitted, true, false).Allowed)
	require.True(t, CanTransition(domain.ReportStatusSubmitted, domain.ReportStatusDraft, false, true).Allowed)
	require.True(t, CanTransition(domain.ReportStatusDraft, domain.ReportStatusSubmitted, true, false).Allowed)
}

func TestAssertMutable(t *testing.T) {
	assert.True(t, AssertMutable(domain.ReportStatusDraft).Allowed)

	d := AssertMutable(domain.ReportStatusSubmitted)
	require.False(t, d.Allowed)
	assert.Equal(t, domain.DenyValidation, d.Reason)
}

func TestCanMutateChildren(t *testing.T) {
	assert.True(t, CanMutateChildren(domain.ReportStatusDraft))
	assert.False(t, CanMutateChildren(domain.ReportStatusSubmitted))
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(domain.ReportStatusDraft, true).Allowed)

	notOwner := CanDelete(domain.ReportStatusDraft, false)
	require.False(t, notOwner.Allowed)
	assert.Equal(t, domain.DenyForbidden, notOwner.Reason)

	// Submitted reports cannot be deleted, owner or not.
	submitted := CanDelete(domain.ReportStatusSubmitted, true)
	require.False(t, submitted.Allowed)
	assert.Equal(t, domain.DenyValidation, submitted.Reason)
}
