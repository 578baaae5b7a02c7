package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/repository"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// In-memory repository fakes. They mirror the contract of the Postgres
// implementations: pgx.ErrNoRows for misses, ErrDuplicateReportDate on the
// per-day uniqueness rule, ErrStatusConflict on stale transitions.

type memStore struct {
	nextReportID int64
	nextVisitID  int64
	nextComment  int64
	reports      map[int64]*domain.DailyReport
	visits       map[int64]*domain.VisitRecord
	comments     map[int64]*domain.Comment
	customers    map[int64]bool
}

func newMemStore() *memStore {
	return &memStore{
		reports:   make(map[int64]*domain.DailyReport),
		visits:    make(map[int64]*domain.VisitRecord),
		comments:  make(map[int64]*domain.Comment),
		customers: make(map[int64]bool),
	}
}

type memReportRepo struct{ store *memStore }

func (r *memReportRepo) CreateWithVisits(ctx context.Context, report *domain.DailyReport, visits []repository.VisitSeed) error {
	for _, existing := range r.store.reports {
		if existing.SalesID == report.SalesID && existing.ReportDate.Equal(report.ReportDate) {
			return repository.ErrDuplicateReportDate
		}
	}
	r.store.nextReportID++
	report.ReportID = r.store.nextReportID
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	copied := *report
	r.store.reports[report.ReportID] = &copied

	for i, seed := range visits {
		r.store.nextVisitID++
		r.store.visits[r.store.nextVisitID] = &domain.VisitRecord{
			VisitID:      r.store.nextVisitID,
			ReportID:     report.ReportID,
			CustomerID:   seed.CustomerID,
			VisitContent: seed.Content,
			VisitOrder:   i + 1,
		}
	}
	return nil
}

func (r *memReportRepo) Update(ctx context.Context, report *domain.DailyReport) error {
	stored, ok := r.store.reports[report.ReportID]
	if !ok {
		return pgx.ErrNoRows
	}
	*stored = *report
	return nil
}

func (r *memReportRepo) UpdateStatus(ctx context.Context, reportID int64, from, to domain.ReportStatus) error {
	stored, ok := r.store.reports[reportID]
	if !ok || stored.Status != from {
		return repository.ErrStatusConflict
	}
	stored.Status = to
	return nil
}

func (r *memReportRepo) Delete(ctx context.Context, reportID int64) error {
	if _, ok := r.store.reports[reportID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.reports, reportID)
	for id, visit := range r.store.visits {
		if visit.ReportID == reportID {
			delete(r.store.visits, id)
		}
	}
	for id, comment := range r.store.comments {
		if comment.ReportID == reportID {
			delete(r.store.comments, id)
		}
	}
	return nil
}

func (r *memReportRepo) GetByID(ctx context.Context, reportID int64) (*domain.DailyReport, error) {
	stored, ok := r.store.reports[reportID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *memReportRepo) GetRef(ctx context.Context, reportID int64) (domain.ReportRef, error) {
	stored, ok := r.store.reports[reportID]
	if !ok {
		return domain.ReportRef{}, pgx.ErrNoRows
	}
	return stored.Ref(), nil
}

func (r *memReportRepo) List(ctx context.Context, filter repository.ReportFilter) ([]domain.DailyReport, error) {
	var result []domain.DailyReport
	for _, stored := range r.store.reports {
		if filter.SalesID != nil && stored.SalesID != *filter.SalesID {
			continue
		}
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *memReportRepo) Count(ctx context.Context, filter repository.ReportFilter) (int64, error) {
	list, err := r.List(ctx, filter)
	return int64(len(list)), err
}

func (r *memReportRepo) ListUnsubmitted(ctx context.Context, salesID int64) ([]domain.DailyReport, error) {
	status := domain.ReportStatusDraft
	return r.List(ctx, repository.ReportFilter{SalesID: &salesID, Status: &status})
}

func (r *memReportRepo) CountUnsubmittedByManager(ctx context.Context, managerID int64) (int64, error) {
	return 0, nil
}

func (r *memReportRepo) CountPerStaff(ctx context.Context, from *time.Time) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, stored := range r.store.reports {
		counts[stored.SalesID]++
	}
	return counts, nil
}

type memVisitRepo struct{ store *memStore }

func (r *memVisitRepo) Create(ctx context.Context, visit *domain.VisitRecord) error {
	r.store.nextVisitID++
	visit.VisitID = r.store.nextVisitID
	copied := *visit
	r.store.visits[visit.VisitID] = &copied
	return nil
}

func (r *memVisitRepo) Update(ctx context.Context, visit *domain.VisitRecord) error {
	stored, ok := r.store.visits[visit.VisitID]
	if !ok || stored.ReportID != visit.ReportID {
		return pgx.ErrNoRows
	}
	*stored = *visit
	return nil
}

func (r *memVisitRepo) Delete(ctx context.Context, visitID, reportID int64) error {
	stored, ok := r.store.visits[visitID]
	if !ok || stored.ReportID != reportID {
		return pgx.ErrNoRows
	}
	delete(r.store.visits, visitID)
	return nil
}

func (r *memVisitRepo) GetByID(ctx context.Context, visitID, reportID int64) (*domain.VisitRecord, error) {
	stored, ok := r.store.visits[visitID]
	if !ok || stored.ReportID != reportID {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *memVisitRepo) ListByReport(ctx context.Context, reportID int64) ([]domain.VisitRecord, error) {
	var result []domain.VisitRecord
	for _, stored := range r.store.visits {
		if stored.ReportID == reportID {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *memVisitRepo) MaxOrder(ctx context.Context, reportID int64) (int, error) {
	max := 0
	for _, stored := range r.store.visits {
		if stored.ReportID == reportID && stored.VisitOrder > max {
			max = stored.VisitOrder
		}
	}
	return max, nil
}

func (r *memVisitRepo) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	for _, stored := range r.store.visits {
		if stored.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (r *memVisitRepo) CountForStaffOnDate(ctx context.Context, salesID int64, date time.Time) (int64, error) {
	return 0, nil
}

func (r *memVisitRepo) CountForStaffRange(ctx context.Context, salesID *int64, from, to *time.Time) (int64, error) {
	return int64(len(r.store.visits)), nil
}

type memCommentRepo struct{ store *memStore }

func (r *memCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	r.store.nextComment++
	comment.CommentID = r.store.nextComment
	copied := *comment
	r.store.comments[comment.CommentID] = &copied
	return nil
}

func (r *memCommentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	stored, ok := r.store.comments[comment.CommentID]
	if !ok || stored.ReportID != comment.ReportID {
		return pgx.ErrNoRows
	}
	*stored = *comment
	return nil
}

func (r *memCommentRepo) Delete(ctx context.Context, commentID, reportID int64) error {
	stored, ok := r.store.comments[commentID]
	if !ok || stored.ReportID != reportID {
		return pgx.ErrNoRows
	}
	delete(r.store.comments, commentID)
	return nil
}

func (r *memCommentRepo) GetByID(ctx context.Context, commentID, reportID int64) (*domain.Comment, error) {
	stored, ok := r.store.comments[commentID]
	if !ok || stored.ReportID != reportID {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *memCommentRepo) ListByReport(ctx context.Context, reportID int64, commentType *domain.CommentType) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, stored := range r.store.comments {
		if stored.ReportID != reportID {
			continue
		}
		if commentType != nil && stored.CommentType != *commentType {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *memCommentRepo) ListRecentForOwner(ctx context.Context, ownerID int64, since time.Time) ([]domain.Comment, error) {
	return nil, nil
}

type memCustomerRepo struct{ store *memStore }

func (r *memCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error { return nil }
func (r *memCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error { return nil }
func (r *memCustomerRepo) Delete(ctx context.Context, customerID int64) error          { return nil }
func (r *memCustomerRepo) GetByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	if !r.store.customers[customerID] {
		return nil, pgx.ErrNoRows
	}
	return &domain.Customer{CustomerID: customerID}, nil
}
func (r *memCustomerRepo) List(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	return nil, nil
}
func (r *memCustomerRepo) Count(ctx context.Context, filter repository.CustomerFilter) (int64, error) {
	return 0, nil
}
func (r *memCustomerRepo) Exists(ctx context.Context, customerID int64) (bool, error) {
	return r.store.customers[customerID], nil
}

type fixture struct {
	store     *memStore
	reports   *ReportService
	visits    *VisitService
	comments  *CommentService
	customers *CustomerService
}

func newFixture() *fixture {
	store := newMemStore()
	store.customers[100] = true
	store.customers[101] = true

	reportRepo := &memReportRepo{store: store}
	visitRepo := &memVisitRepo{store: store}
	commentRepo := &memCommentRepo{store: store}
	customerRepo := &memCustomerRepo{store: store}

	return &fixture{
		store: store,
		reports: NewReportService(ReportDependencies{
			ReportRepo:   reportRepo,
			VisitRepo:    visitRepo,
			CommentRepo:  commentRepo,
			CustomerRepo: customerRepo,
		}),
		visits: NewVisitService(VisitDependencies{
			VisitRepo:    visitRepo,
			ReportRepo:   reportRepo,
			CustomerRepo: customerRepo,
		}),
		comments: NewCommentService(CommentDependencies{
			CommentRepo: commentRepo,
			ReportRepo:  reportRepo,
		}),
		customers: NewCustomerService(CustomerDependencies{
			CustomerRepo: customerRepo,
			VisitRepo:    visitRepo,
		}),
	}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected a DomainError, got %v", err)
	return de.Code
}

var (
	owner = domain.Identity{SalesID: 1, Role: domain.RoleGeneral}
	other = domain.Identity{SalesID: 2, Role: domain.RoleGeneral}
	admin = domain.Identity{SalesID: 9, Role: domain.RoleAdmin}
)

func TestReportLifecycleScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	report, visits, err := f.reports.CreateReport(ctx, owner, ReportCreateInput{
		ReportDate: date,
		Visits:     []repository.VisitSeed{{CustomerID: 100, Content: "initial visit"}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusDraft, report.Status)
	assert.Len(t, visits, 1)

	// Second report for the same day is rejected.
	_, _, err = f.reports.CreateReport(ctx, owner, ReportCreateInput{ReportDate: date})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))

	// Visits can be added while the report is a draft.
	visit, err := f.visits.CreateVisit(ctx, owner, report.ReportID, VisitCreateInput{
		CustomerID:   101,
		VisitContent: "afternoon follow-up",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, visit.VisitOrder)

	// Submit locks the report.
	submitted, err := f.reports.UpdateStatus(ctx, owner, report.ReportID, domain.ReportStatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusSubmitted, submitted.Status)

	_, err = f.visits.CreateVisit(ctx, owner, report.ReportID, VisitCreateInput{
		CustomerID:   100,
		VisitContent: "late addition",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))

	problem := "missed the morning train"
	_, err = f.reports.UpdateReport(ctx, owner, report.ReportID, ReportUpdateInput{Problem: &problem})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))

	// Submitted reports cannot be deleted, even by the owner.
	err = f.reports.DeleteReport(ctx, owner, report.ReportID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))

	// An admin may revert the report to draft.
	reverted, err := f.reports.UpdateStatus(ctx, admin, report.ReportID, domain.ReportStatusDraft)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusDraft, reverted.Status)

	// Back in draft, the owner can edit and delete again.
	updated, err := f.reports.UpdateReport(ctx, owner, report.ReportID, ReportUpdateInput{Problem: &problem})
	require.NoError(t, err)
	require.NotNil(t, updated.Problem)
	assert.Equal(t, problem, *updated.Problem)

	require.NoError(t, f.reports.DeleteReport(ctx, owner, report.ReportID))
	assert.Empty(t, f.store.reports)
	assert.Empty(t, f.store.visits)
}

func TestReportAccessControl(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	report, _, err := f.reports.CreateReport(ctx, owner, ReportCreateInput{ReportDate: date})
	require.NoError(t, err)

	t.Run("other staff cannot read", func(t *testing.T) {
		_, _, _, err := f.reports.GetReport(ctx, other, report.ReportID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})

	t.Run("admin can read", func(t *testing.T) {
		got, _, _, err := f.reports.GetReport(ctx, admin, report.ReportID)
		require.NoError(t, err)
		assert.Equal(t, report.ReportID, got.ReportID)
	})

	t.Run("admin cannot edit someone else's report", func(t *testing.T) {
		plan := "visit the factory"
		_, err := f.reports.UpdateReport(ctx, admin, report.ReportID, ReportUpdateInput{Plan: &plan})
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})

	t.Run("only the owner may submit", func(t *testing.T) {
		_, err := f.reports.UpdateStatus(ctx, admin, report.ReportID, domain.ReportStatusSubmitted)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})

	t.Run("admin cannot delete someone else's report", func(t *testing.T) {
		err := f.reports.DeleteReport(ctx, admin, report.ReportID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})

	t.Run("missing report is NOT_FOUND not FORBIDDEN", func(t *testing.T) {
		_, _, _, err := f.reports.GetReport(ctx, owner, 9999)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}

func TestReportListScoping(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		date := time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
		_, _, err := f.reports.CreateReport(ctx, owner, ReportCreateInput{ReportDate: date})
		require.NoError(t, err)
	}
	_, _, err := f.reports.CreateReport(ctx, other, ReportCreateInput{
		ReportDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	ownReports, total, err := f.reports.ListReports(ctx, owner, ReportListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, report := range ownReports {
		assert.Equal(t, owner.SalesID, report.SalesID)
	}

	_, adminTotal, err := f.reports.ListReports(ctx, admin, ReportListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, adminTotal)
}

func TestCommentRules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	report, _, err := f.reports.CreateReport(ctx, owner, ReportCreateInput{
		ReportDate: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	comment, err := f.comments.CreateComment(ctx, admin, report.ReportID, domain.CommentTypeAdvice, "schedule a joint visit")
	require.NoError(t, err)

	t.Run("unrelated staff cannot comment", func(t *testing.T) {
		_, err := f.comments.CreateComment(ctx, other, report.ReportID, domain.CommentTypeQuestion, "what happened?")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})

	t.Run("owner reads comments", func(t *testing.T) {
		comments, err := f.comments.ListComments(ctx, owner, report.ReportID, nil)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("only the author may edit", func(t *testing.T) {
		_, err := f.comments.UpdateComment(ctx, owner, report.ReportID, comment.CommentID, "edited")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))

		updated, err := f.comments.UpdateComment(ctx, admin, report.ReportID, comment.CommentID, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.CommentContent)
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		_, err := f.comments.CreateComment(ctx, admin, report.ReportID, domain.CommentType("RANT"), "no")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
	})
}

func TestVisitCustomerMustExist(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	report, _, err := f.reports.CreateReport(ctx, owner, ReportCreateInput{
		ReportDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = f.visits.CreateVisit(ctx, owner, report.ReportID, VisitCreateInput{
		CustomerID:   555,
		VisitContent: "ghost customer",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
}
