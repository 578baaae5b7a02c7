package dto

import "time"

// CustomerRequest payload for create and update.
type CustomerRequest struct {
	CustomerName string `json:"customer_name"`
	CompanyName  string `json:"company_name"`
	Department   string `json:"department"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}

// CustomerResponse response.
type CustomerResponse struct {
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	CompanyName  string    `json:"company_name"`
	Department   string    `json:"department"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CustomerListResponse is a paginated page of customers.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
