package dto

import "github.com/spec-kit/sales-report-service/internal/domain"

// CreateStaffRequest payload.
type CreateStaffRequest struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Password   string           `json:"password"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	Role       domain.StaffRole `json:"role"`
	ManagerID  *int64           `json:"manager_id"`
}

// UpdateStaffRequest payload; omitted fields stay unchanged. ManagerID is
// applied only when the manager_id key is present, so it can be cleared
// with an explicit null.
type UpdateStaffRequest struct {
	Name       *string           `json:"name"`
	Email      *string           `json:"email"`
	Password   *string           `json:"password"`
	Department *string           `json:"department"`
	Position   *string           `json:"position"`
	Role       *domain.StaffRole `json:"role"`
	ManagerID  *int64            `json:"manager_id"`
}

// StaffDetailResponse includes the resolved manager and subordinates.
type StaffDetailResponse struct {
	StaffProfile
	Manager      *StaffProfile  `json:"manager"`
	Subordinates []StaffProfile `json:"subordinates"`
}

// StaffListResponse is a paginated page of staff.
type StaffListResponse struct {
	Items []StaffProfile `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
