package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// VisitRepository encapsulates visit record persistence.
type VisitRepository interface {
	Create(ctx context.Context, visit *domain.VisitRecord) error
	Update(ctx context.Context, visit *domain.VisitRecord) error
	Delete(ctx context.Context, visitID, reportID int64) error
	GetByID(ctx context.Context, visitID, reportID int64) (*domain.VisitRecord, error)
	ListByReport(ctx context.Context, reportID int64) ([]domain.VisitRecord, error)
	MaxOrder(ctx context.Context, reportID int64) (int, error)
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
	CountForStaffOnDate(ctx context.Context, salesID int64, date time.Time) (int64, error)
	CountForStaffRange(ctx context.Context, salesID *int64, from, to *time.Time) (int64, error)
}

type visitRepository struct {
	pool *pgxpool.Pool
}

// NewVisitRepository instantiates repository.
func NewVisitRepository(pool *pgxpool.Pool) VisitRepository {
	return &visitRepository{pool: pool}
}

func (r *visitRepository) Create(ctx context.Context, visit *domain.VisitRecord) error {
	const query = `
        INSERT INTO visit_records (report_id, customer_id, visit_content, visit_order)
        VALUES ($1,$2,$3,$4)
        RETURNING visit_id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		visit.ReportID,
		visit.CustomerID,
		visit.VisitContent,
		visit.VisitOrder,
	).Scan(&visit.VisitID, &visit.CreatedAt, &visit.UpdatedAt)
}

func (r *visitRepository) Update(ctx context.Context, visit *domain.VisitRecord) error {
	const query = `
        UPDATE visit_records SET customer_id=$1, visit_content=$2, visit_order=$3, updated_at=NOW()
        WHERE visit_id=$4 AND report_id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		visit.CustomerID,
		visit.VisitContent,
		visit.VisitOrder,
		visit.VisitID,
		visit.ReportID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *visitRepository) Delete(ctx context.Context, visitID, reportID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM visit_records WHERE visit_id=$1 AND report_id=$2`, visitID, reportID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *visitRepository) GetByID(ctx context.Context, visitID, reportID int64) (*domain.VisitRecord, error) {
	const query = `SELECT visit_id, report_id, customer_id, visit_content, visit_order, created_at, updated_at
        FROM visit_records WHERE visit_id=$1 AND report_id=$2`
	var visit domain.VisitRecord
	if err := r.pool.QueryRow(ctx, query, visitID, reportID).Scan(
		&visit.VisitID,
		&visit.ReportID,
		&visit.CustomerID,
		&visit.VisitContent,
		&visit.VisitOrder,
		&visit.CreatedAt,
		&visit.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) ListByReport(ctx context.Context, reportID int64) ([]domain.VisitRecord, error) {
	const query = `SELECT visit_id, report_id, customer_id, visit_content, visit_order, created_at, updated_at
        FROM visit_records WHERE report_id=$1 ORDER BY visit_order ASC`
	rows, err := r.pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.VisitRecord
	for rows.Next() {
		var visit domain.VisitRecord
		if err := rows.Scan(
			&visit.VisitID,
			&visit.ReportID,
			&visit.CustomerID,
			&visit.VisitContent,
			&visit.VisitOrder,
			&visit.CreatedAt,
			&visit.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, visit)
	}
	return result, rows.Err()
}

func (r *visitRepository) MaxOrder(ctx context.Context, reportID int64) (int, error) {
	var max int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(visit_order), 0) FROM visit_records WHERE report_id=$1`,
		reportID,
	).Scan(&max)
	return max, err
}

func (r *visitRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM visit_records WHERE customer_id=$1`,
		customerID,
	).Scan(&count)
	return count, err
}

func (r *visitRepository) CountForStaffOnDate(ctx context.Context, salesID int64, date time.Time) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM visit_records vr
        JOIN daily_reports dr ON dr.report_id = vr.report_id
        WHERE dr.sales_id=$1 AND dr.report_date=$2`
	var count int64
	err := r.pool.QueryRow(ctx, query, salesID, date).Scan(&count)
	return count, err
}

func (r *visitRepository) CountForStaffRange(ctx context.Context, salesID *int64, from, to *time.Time) (int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if salesID != nil {
		args = append(args, *salesID)
		clauses = append(clauses, fmt.Sprintf("dr.sales_id=$%d", len(args)))
	}
	if from != nil {
		args = append(args, *from)
		clauses = append(clauses, fmt.Sprintf("dr.report_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		clauses = append(clauses, fmt.Sprintf("dr.report_date <= $%d", len(args)))
	}

	query := fmt.Sprintf(`
        SELECT COUNT(*) FROM visit_records vr
        JOIN daily_reports dr ON dr.report_id = vr.report_id
        WHERE %s`, strings.Join(clauses, " AND "))

	var count int64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}
