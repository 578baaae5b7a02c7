package domain

import "time"

// StaffRole enumerates access levels for sales staff.
type StaffRole string

const (
	RoleGeneral StaffRole = "GENERAL"
	RoleAdmin   StaffRole = "ADMIN"
)

// Valid reports whether the role is a known value.
func (r StaffRole) Valid() bool {
	return r == RoleGeneral || r == RoleAdmin
}

// SalesStaff is a staff member who writes daily reports. ManagerID links to
// the direct manager, one level only; nil means no manager.
type SalesStaff struct {
	SalesID      int64
	Name         string
	Email        string
	PasswordHash string
	Department   string
	Position     string
	Role         StaffRole
	ManagerID    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the staff member holds the admin role.
func (s *SalesStaff) IsAdmin() bool {
	return s.Role == RoleAdmin
}
