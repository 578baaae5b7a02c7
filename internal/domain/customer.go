package domain

import "time"

// Customer is master data with no ownership; mutation is admin-only.
type Customer struct {
	CustomerID   int64
	CustomerName string
	CompanyName  string
	Department   string
	Phone        string
	Email        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
