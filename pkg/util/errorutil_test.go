package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

func TestFromDecision(t *testing.T) {
	assert.NoError(t, FromDecision(domain.Allow()))

	tests := []struct {
		name       string
		decision   domain.Decision
		wantCode   string
		wantStatus int
	}{
		{"forbidden", domain.Deny(domain.DenyForbidden, "no access"), "FORBIDDEN", http.StatusForbidden},
		{"validation", domain.Deny(domain.DenyValidation, "already submitted"), "VALIDATION_ERROR", http.StatusBadRequest},
		{"not found", domain.Deny(domain.DenyNotFound, "report"), "NOT_FOUND", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromDecision(tt.decision)
			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	de := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", de.Code)

	wrapped := ToDomainError(NewForbidden("nope"))
	assert.Equal(t, "FORBIDDEN", wrapped.Code)

	internal := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
}
