package service

import (
	"context"
	"time"

	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/repository"
)

// StatisticsService computes report and visit aggregates. General staff see
// their own numbers; admins additionally get a per-staff breakdown.
type StatisticsService struct {
	reports repository.ReportRepository
	visits  repository.VisitRepository
	staff   repository.StaffRepository
}

// StatisticsDependencies bundles requirements for the statistics service.
type StatisticsDependencies struct {
	ReportRepo repository.ReportRepository
	VisitRepo  repository.VisitRepository
	StaffRepo  repository.StaffRepository
}

// NewStatisticsService constructs the service.
func NewStatisticsService(deps StatisticsDependencies) *StatisticsService {
	return &StatisticsService{
		reports: deps.ReportRepo,
		visits:  deps.VisitRepo,
		staff:   deps.StaffRepo,
	}
}

// Statistics is the aggregate view returned to the client.
type Statistics struct {
	TotalReports   int64
	MonthlyReports int64
	WeeklyReports  int64
	SubmittedTotal int64
	SubmissionRate float64
	TotalVisits    int64
	MonthlyVisits  int64
	StaffBreakdown []StaffReportCount
}

// StaffReportCount pairs a staff member with their monthly report count.
type StaffReportCount struct {
	SalesID int64
	Name    string
	Reports int64
}

// Overview computes the caller's statistics. Counts are scoped to the caller
// for general staff and global for admins; only admins receive the breakdown.
func (s *StatisticsService) Overview(ctx context.Context, id domain.Identity) (*Statistics, error) {
	var scope *int64
	if !id.IsAdmin() {
		salesID := id.SalesID
		scope = &salesID
	}

	now := time.Now()
	today := truncateToDate(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))

	total, err := s.reports.Count(ctx, repository.ReportFilter{SalesID: scope})
	if err != nil {
		return nil, err
	}
	monthly, err := s.reports.Count(ctx, repository.ReportFilter{SalesID: scope, DateFrom: &monthStart})
	if err != nil {
		return nil, err
	}
	weekly, err := s.reports.Count(ctx, repository.ReportFilter{SalesID: scope, DateFrom: &weekStart})
	if err != nil {
		return nil, err
	}

	submittedStatus := domain.ReportStatusSubmitted
	submitted, err := s.reports.Count(ctx, repository.ReportFilter{SalesID: scope, Status: &submittedStatus})
	if err != nil {
		return nil, err
	}

	totalVisits, err := s.visits.CountForStaffRange(ctx, scope, nil, nil)
	if err != nil {
		return nil, err
	}
	monthlyVisits, err := s.visits.CountForStaffRange(ctx, scope, &monthStart, nil)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalReports:   total,
		MonthlyReports: monthly,
		WeeklyReports:  weekly,
		SubmittedTotal: submitted,
		TotalVisits:    totalVisits,
		MonthlyVisits:  monthlyVisits,
	}
	if total > 0 {
		stats.SubmissionRate = float64(submitted) / float64(total)
	}

	if id.IsAdmin() {
		breakdown, err := s.staffBreakdown(ctx, monthStart)
		if err != nil {
			return nil, err
		}
		stats.StaffBreakdown = breakdown
	}
	return stats, nil
}

func (s *StatisticsService) staffBreakdown(ctx context.Context, from time.Time) ([]StaffReportCount, error) {
	counts, err := s.reports.CountPerStaff(ctx, &from)
	if err != nil {
		return nil, err
	}

	// One page of staff is enough for the breakdown table.
	members, err := s.staff.List(ctx, repository.StaffFilter{Limit: 200})
	if err != nil {
		return nil, err
	}

	breakdown := make([]StaffReportCount, 0, len(members))
	for _, member := range members {
		breakdown = append(breakdown, StaffReportCount{
			SalesID: member.SalesID,
			Name:    member.Name,
			Reports: counts[member.SalesID],
		})
	}
	return breakdown, nil
}
