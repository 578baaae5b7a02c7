package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/repository"
)

// DashboardService assembles the per-staff landing page summary: unsubmitted
// drafts, recent comments from others, and activity counters.
type DashboardService struct {
	reports       repository.ReportRepository
	visits        repository.VisitRepository
	comments      repository.CommentRepository
	notifications *NotificationService
	logger        *zap.Logger
}

// DashboardDependencies bundles requirements for the dashboard service.
type DashboardDependencies struct {
	ReportRepo    repository.ReportRepository
	VisitRepo     repository.VisitRepository
	CommentRepo   repository.CommentRepository
	Notifications *NotificationService
	Logger        *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		reports:       deps.ReportRepo,
		visits:        deps.VisitRepo,
		comments:      deps.CommentRepo,
		notifications: deps.Notifications,
		logger:        deps.Logger,
	}
}

// Dashboard is the summary returned to the client.
type Dashboard struct {
	UnsubmittedReports []domain.DailyReport
	RecentComments     []domain.Comment
	UnreadComments     int64
	TodayVisits        int64
	ThisMonthReports   int64
	TeamUnsubmitted    *int64
}

// Summary builds the dashboard for the caller. Admins additionally see how
// many of their direct subordinates' reports are still unsubmitted. Reading
// the summary clears the unread-comment counter.
func (s *DashboardService) Summary(ctx context.Context, id domain.Identity) (*Dashboard, error) {
	unsubmitted, err := s.reports.ListUnsubmitted(ctx, id.SalesID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -7)
	recent, err := s.comments.ListRecentForOwner(ctx, id.SalesID, since)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifications.UnreadCount(ctx, id.SalesID)
	if err != nil {
		// The counter is a convenience; the dashboard still renders without it.
		s.logger.Warn("failed to read unread comment counter", zap.Int64("staff", id.SalesID), zap.Error(err))
		unread = 0
	}

	today := truncateToDate(time.Now())
	todayVisits, err := s.visits.CountForStaffOnDate(ctx, id.SalesID, today)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	salesID := id.SalesID
	monthReports, err := s.reports.Count(ctx, repository.ReportFilter{SalesID: &salesID, DateFrom: &monthStart})
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		UnsubmittedReports: unsubmitted,
		RecentComments:     recent,
		UnreadComments:     unread,
		TodayVisits:        todayVisits,
		ThisMonthReports:   monthReports,
	}

	if id.IsAdmin() {
		teamUnsubmitted, err := s.reports.CountUnsubmittedByManager(ctx, id.SalesID)
		if err != nil {
			return nil, err
		}
		dashboard.TeamUnsubmitted = &teamUnsubmitted
	}

	if err := s.notifications.MarkRead(ctx, id.SalesID); err != nil {
		s.logger.Warn("failed to clear unread comment counter", zap.Int64("staff", id.SalesID), zap.Error(err))
	}
	return dashboard, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
