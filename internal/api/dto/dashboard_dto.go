package dto

// DashboardResponse is the landing page summary.
type DashboardResponse struct {
	UnsubmittedReports []ReportSummary   `json:"unsubmitted_reports"`
	RecentComments     []CommentResponse `json:"recent_comments"`
	UnreadComments     int64             `json:"unread_comments"`
	TodayVisits        int64             `json:"today_visits"`
	ThisMonthReports   int64             `json:"this_month_reports"`
	TeamUnsubmitted    *int64            `json:"team_unsubmitted,omitempty"`
}

// StatisticsResponse is the aggregate view.
type StatisticsResponse struct {
	TotalReports   int64                 `json:"total_reports"`
	MonthlyReports int64                 `json:"monthly_reports"`
	WeeklyReports  int64                 `json:"weekly_reports"`
	SubmittedTotal int64                 `json:"submitted_total"`
	SubmissionRate float64               `json:"submission_rate"`
	TotalVisits    int64                 `json:"total_visits"`
	MonthlyVisits  int64                 `json:"monthly_visits"`
	StaffBreakdown []StaffReportCountDTO `json:"staff_breakdown,omitempty"`
}

// StaffReportCountDTO pairs a staff member with their report count.
type StaffReportCountDTO struct {
	SalesID int64  `json:"sales_id"`
	Name    string `json:"name"`
	Reports int64  `json:"reports"`
}
