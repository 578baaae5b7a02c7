package domain

import "time"

// ReportStatus enumerates daily report lifecycle states.
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "DRAFT"
	ReportStatusSubmitted ReportStatus = "SUBMITTED"
)

// Valid reports whether the status is a known value.
func (s ReportStatus) Valid() bool {
	return s == ReportStatusDraft || s == ReportStatusSubmitted
}

// DailyReport is the aggregate for one staff member's activity on one date.
// One report exists per (SalesID, ReportDate) pair.
type DailyReport struct {
	ReportID   int64
	SalesID    int64
	ReportDate time.Time
	Problem    *string
	Plan       *string
	Status     ReportStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReportRef is the minimal ownership projection used by authorization and
// lifecycle checks on a report and its children.
type ReportRef struct {
	ReportID int64
	SalesID  int64
	Status   ReportStatus
}

// Ref returns the ownership projection of the report.
func (r *DailyReport) Ref() ReportRef {
	return ReportRef{ReportID: r.ReportID, SalesID: r.SalesID, Status: r.Status}
}

// VisitRecord is a customer visit attached to a daily report. Ownership is
// inherited from the parent report.
type VisitRecord struct {
	VisitID      int64
	ReportID     int64
	CustomerID   int64
	VisitContent string
	VisitOrder   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
