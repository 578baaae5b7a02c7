package domain

// Identity is the authenticated caller, resolved once per request by the
// auth middleware and passed by value through the call chain.
type Identity struct {
	SalesID int64
	Role    StaffRole
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
