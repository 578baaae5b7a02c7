package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// ErrDuplicateReportDate signals the (sales_id, report_date) uniqueness
// constraint fired; the caller already holds a report for that date.
var ErrDuplicateReportDate = errors.New("report already exists for this date")

// ErrStatusConflict signals the report status changed between the lifecycle
// decision and the write; the transition must be retried against fresh state.
var ErrStatusConflict = errors.New("report status changed concurrently")

const pgUniqueViolation = "23505"

// ReportFilter captures report search parameters.
type ReportFilter struct {
	SalesID  *int64
	DateFrom *time.Time
	DateTo   *time.Time
	Status   *domain.ReportStatus
	Limit    int
	Offset   int
}

// VisitSeed is a visit record created together with its report.
type VisitSeed struct {
	CustomerID int64
	Content    string
}

// ReportRepository encapsulates daily report persistence. Creation and status
// transitions run inside transactions so two concurrent submits or creates
// cannot both succeed.
type ReportRepository interface {
	CreateWithVisits(ctx context.Context, report *domain.DailyReport, visits []VisitSeed) error
	Update(ctx context.Context, report *domain.DailyReport) error
	UpdateStatus(ctx context.Context, reportID int64, from, to domain.ReportStatus) error
	Delete(ctx context.Context, reportID int64) error
	GetByID(ctx context.Context, reportID int64) (*domain.DailyReport, error)
	GetRef(ctx context.Context, reportID int64) (domain.ReportRef, error)
	List(ctx context.Context, filter ReportFilter) ([]domain.DailyReport, error)
	Count(ctx context.Context, filter ReportFilter) (int64, error)
	ListUnsubmitted(ctx context.Context, salesID int64) ([]domain.DailyReport, error)
	CountUnsubmittedByManager(ctx context.Context, managerID int64) (int64, error)
	CountPerStaff(ctx context.Context, from *time.Time) (map[int64]int64, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `report_id, sales_id, report_date, problem, plan, status, created_at, updated_at`

func (r *reportRepository) CreateWithVisits(ctx context.Context, report *domain.DailyReport, visits []VisitSeed) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertReport = `
        INSERT INTO daily_reports (sales_id, report_date, problem, plan, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING report_id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertReport,
		report.SalesID,
		report.ReportDate,
		report.Problem,
		report.Plan,
		report.Status,
	).Scan(&report.ReportID, &report.CreatedAt, &report.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateReportDate
		}
		return err
	}

	const insertVisit = `
        INSERT INTO visit_records (report_id, customer_id, visit_content, visit_order)
        VALUES ($1,$2,$3,$4)`
	for i, visit := range visits {
		if _, err := tx.Exec(ctx, insertVisit, report.ReportID, visit.CustomerID, visit.Content, i+1); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *reportRepository) Update(ctx context.Context, report *domain.DailyReport) error {
	const query = `
        UPDATE daily_reports SET problem=$1, plan=$2, status=$3, updated_at=NOW()
        WHERE report_id=$4`
	cmd, err := r.pool.Exec(ctx, query, report.Problem, report.Plan, report.Status, report.ReportID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStatus performs the read-modify-write of a transition as a single
// conditional update. Zero rows means the report either vanished or moved to
// another status after the lifecycle check ran.
func (r *reportRepository) UpdateStatus(ctx context.Context, reportID int64, from, to domain.ReportStatus) error {
	const query = `
        UPDATE daily_reports SET status=$1, updated_at=NOW()
        WHERE report_id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, to, reportID, from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *reportRepository) Delete(ctx context.Context, reportID int64) error {
	// Visit records and comments cascade via FK.
	cmd, err := r.pool.Exec(ctx, `DELETE FROM daily_reports WHERE report_id=$1`, reportID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, reportID int64) (*domain.DailyReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_reports WHERE report_id=$1`, reportColumns)
	var report domain.DailyReport
	if err := r.pool.QueryRow(ctx, query, reportID).Scan(
		&report.ReportID,
		&report.SalesID,
		&report.ReportDate,
		&report.Problem,
		&report.Plan,
		&report.Status,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetRef loads only the ownership projection the core decisions need.
func (r *reportRepository) GetRef(ctx context.Context, reportID int64) (domain.ReportRef, error) {
	const query = `SELECT report_id, sales_id, status FROM daily_reports WHERE report_id=$1`
	var ref domain.ReportRef
	err := r.pool.QueryRow(ctx, query, reportID).Scan(&ref.ReportID, &ref.SalesID, &ref.Status)
	return ref, err
}

func reportFilterClauses(filter ReportFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.SalesID != nil {
		args = append(args, *filter.SalesID)
		clauses = append(clauses, fmt.Sprintf("sales_id=$%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		clauses = append(clauses, fmt.Sprintf("report_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		clauses = append(clauses, fmt.Sprintf("report_date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	return clauses, args
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]domain.DailyReport, error) {
	clauses, args := reportFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM daily_reports WHERE %s ORDER BY report_date DESC LIMIT %d OFFSET %d`,
		reportColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

func (r *reportRepository) Count(ctx context.Context, filter ReportFilter) (int64, error) {
	clauses, args := reportFilterClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM daily_reports WHERE %s`, strings.Join(clauses, " AND "))

	var count int64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *reportRepository) ListUnsubmitted(ctx context.Context, salesID int64) ([]domain.DailyReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_reports WHERE sales_id=$1 AND status=$2 ORDER BY report_date DESC`,
		reportColumns)
	rows, err := r.pool.Query(ctx, query, salesID, domain.ReportStatusDraft)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

func (r *reportRepository) CountUnsubmittedByManager(ctx context.Context, managerID int64) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM daily_reports dr
        JOIN sales_staff ss ON ss.sales_id = dr.sales_id
        WHERE ss.manager_id=$1 AND dr.status=$2`
	var count int64
	err := r.pool.QueryRow(ctx, query, managerID, domain.ReportStatusDraft).Scan(&count)
	return count, err
}

func (r *reportRepository) CountPerStaff(ctx context.Context, from *time.Time) (map[int64]int64, error) {
	query := `SELECT sales_id, COUNT(*) FROM daily_reports`
	args := []any{}
	if from != nil {
		args = append(args, *from)
		query += ` WHERE report_date >= $1`
	}
	query += ` GROUP BY sales_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var salesID, count int64
		if err := rows.Scan(&salesID, &count); err != nil {
			return nil, err
		}
		counts[salesID] = count
	}
	return counts, rows.Err()
}

func scanReports(rows pgx.Rows) ([]domain.DailyReport, error) {
	var result []domain.DailyReport
	for rows.Next() {
		var report domain.DailyReport
		if err := rows.Scan(
			&report.ReportID,
			&report.SalesID,
			&report.ReportDate,
			&report.Problem,
			&report.Plan,
			&report.Status,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}
