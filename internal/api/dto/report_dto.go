package dto

import (
	"time"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// CreateReportRequest payload. ReportDate uses the 2006-01-02 format.
type CreateReportRequest struct {
	ReportDate string              `json:"report_date"`
	Problem    *string             `json:"problem"`
	Plan       *string             `json:"plan"`
	Status     domain.ReportStatus `json:"status"`
	Visits     []VisitSeedRequest  `json:"visits"`
}

// VisitSeedRequest is a visit created together with its report.
type VisitSeedRequest struct {
	CustomerID   int64  `json:"customer_id"`
	VisitContent string `json:"visit_content"`
}

// UpdateReportRequest payload; omitted fields stay unchanged.
type UpdateReportRequest struct {
	Problem *string `json:"problem"`
	Plan    *string `json:"plan"`
}

// UpdateReportStatusRequest payload.
type UpdateReportStatusRequest struct {
	Status domain.ReportStatus `json:"status"`
}

// ReportSummary response.
type ReportSummary struct {
	ReportID   int64               `json:"report_id"`
	SalesID    int64               `json:"sales_id"`
	ReportDate string              `json:"report_date"`
	Problem    *string             `json:"problem"`
	Plan       *string             `json:"plan"`
	Status     domain.ReportStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// ReportDetailResponse includes the report's visits and comments.
type ReportDetailResponse struct {
	ReportSummary
	Visits   []VisitResponse   `json:"visits"`
	Comments []CommentResponse `json:"comments"`
}

// ReportListResponse is a paginated page of reports.
type ReportListResponse struct {
	Items []ReportSummary `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
