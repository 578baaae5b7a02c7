package dto

import "time"

// CreateVisitRequest payload.
type CreateVisitRequest struct {
	CustomerID   int64  `json:"customer_id"`
	VisitContent string `json:"visit_content"`
	VisitOrder   *int   `json:"visit_order"`
}

// UpdateVisitRequest payload; omitted fields stay unchanged.
type UpdateVisitRequest struct {
	CustomerID   *int64  `json:"customer_id"`
	VisitContent *string `json:"visit_content"`
	VisitOrder   *int    `json:"visit_order"`
}

// VisitResponse response.
type VisitResponse struct {
	VisitID      int64     `json:"visit_id"`
	ReportID     int64     `json:"report_id"`
	CustomerID   int64     `json:"customer_id"`
	VisitContent string    `json:"visit_content"`
	VisitOrder   int       `json:"visit_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
