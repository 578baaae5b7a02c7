package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-report-service/internal/api/dto"
	"github.com/spec-kit/sales-report-service/internal/service"
)

// DashboardHandler serves the landing page summary and statistics.
type DashboardHandler struct {
	dashboard  *service.DashboardService
	statistics *service.StatisticsService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService, statistics *service.StatisticsService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, statistics: statistics}
}

// Summary GET /dashboard.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	summary, err := h.dashboard.Summary(c.UserContext(), id)
	if err != nil {
		return err
	}

	unsubmitted := make([]dto.ReportSummary, 0, len(summary.UnsubmittedReports))
	for i := range summary.UnsubmittedReports {
		unsubmitted = append(unsubmitted, reportSummary(&summary.UnsubmittedReports[i]))
	}
	recent := make([]dto.CommentResponse, 0, len(summary.RecentComments))
	for i := range summary.RecentComments {
		recent = append(recent, commentResponse(&summary.RecentComments[i]))
	}

	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		UnsubmittedReports: unsubmitted,
		RecentComments:     recent,
		UnreadComments:     summary.UnreadComments,
		TodayVisits:        summary.TodayVisits,
		ThisMonthReports:   summary.ThisMonthReports,
		TeamUnsubmitted:    summary.TeamUnsubmitted,
	}})
}

// Statistics GET /statistics.
func (h *DashboardHandler) Statistics(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.statistics.Overview(c.UserContext(), id)
	if err != nil {
		return err
	}

	breakdown := make([]dto.StaffReportCountDTO, 0, len(stats.StaffBreakdown))
	for _, entry := range stats.StaffBreakdown {
		breakdown = append(breakdown, dto.StaffReportCountDTO{
			SalesID: entry.SalesID,
			Name:    entry.Name,
			Reports: entry.Reports,
		})
	}

	return c.JSON(fiber.Map{"data": dto.StatisticsResponse{
		TotalReports:   stats.TotalReports,
		MonthlyReports: stats.MonthlyReports,
		WeeklyReports:  stats.WeeklyReports,
		SubmittedTotal: stats.SubmittedTotal,
		SubmissionRate: stats.SubmissionRate,
		TotalVisits:    stats.TotalVisits,
		MonthlyVisits:  stats.MonthlyVisits,
		StaffBreakdown: breakdown,
	}})
}
