package dto

import (
	"time"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated profile.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Staff     StaffProfile `json:"staff"`
}

// StaffProfile is the public view of a staff member.
type StaffProfile struct {
	SalesID    int64            `json:"sales_id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	Role       domain.StaffRole `json:"role"`
	ManagerID  *int64           `json:"manager_id"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
