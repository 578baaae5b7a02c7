package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// StaffFilter captures staff search parameters.
type StaffFilter struct {
	Search     *string
	Department *string
	Role       *domain.StaffRole
	Limit      int
	Offset     int
}

// StaffRepository encapsulates sales staff persistence.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.SalesStaff) error
	Update(ctx context.Context, staff *domain.SalesStaff) error
	Delete(ctx context.Context, salesID int64) error
	GetByID(ctx context.Context, salesID int64) (*domain.SalesStaff, error)
	GetByEmail(ctx context.Context, email string) (*domain.SalesStaff, error)
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.SalesStaff, error)
	Count(ctx context.Context, filter StaffFilter) (int64, error)
	ListByManager(ctx context.Context, managerID int64) ([]domain.SalesStaff, error)
	CountByManager(ctx context.Context, managerID int64) (int64, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `sales_id, name, email, password_hash, department, position, role, manager_id, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.SalesStaff) error {
	const query = `
        INSERT INTO sales_staff (name, email, password_hash, department, position, role, manager_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING sales_id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Department,
		staff.Position,
		staff.Role,
		staff.ManagerID,
	).Scan(&staff.SalesID, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.SalesStaff) error {
	const query = `
        UPDATE sales_staff SET name=$1, email=$2, password_hash=$3, department=$4,
            position=$5, role=$6, manager_id=$7, updated_at=NOW()
        WHERE sales_id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Department,
		staff.Position,
		staff.Role,
		staff.ManagerID,
		staff.SalesID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, salesID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sales_staff WHERE sales_id=$1`, salesID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, salesID int64) (*domain.SalesStaff, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales_staff WHERE sales_id=$1`, staffColumns)
	return r.fetchSingle(ctx, query, salesID)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.SalesStaff, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales_staff WHERE email=$1`, staffColumns)
	return r.fetchSingle(ctx, query, email)
}

func (r *staffRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.SalesStaff, error) {
	var staff domain.SalesStaff
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&staff.SalesID,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Department,
		&staff.Position,
		&staff.Role,
		&staff.ManagerID,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales_staff WHERE email=$1 AND sales_id<>$2`,
		email, excludeID,
	).Scan(&count)
	return count > 0, err
}

func staffFilterClauses(filter StaffFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(email) LIKE %s)", placeholder, placeholder))
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("department=$%d", len(args)))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	return clauses, args
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.SalesStaff, error) {
	clauses, args := staffFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM sales_staff WHERE %s ORDER BY sales_id LIMIT %d OFFSET %d`,
		staffColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaff(rows)
}

func (r *staffRepository) Count(ctx context.Context, filter StaffFilter) (int64, error) {
	clauses, args := staffFilterClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM sales_staff WHERE %s`, strings.Join(clauses, " AND "))

	var count int64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *staffRepository) ListByManager(ctx context.Context, managerID int64) ([]domain.SalesStaff, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales_staff WHERE manager_id=$1 ORDER BY sales_id`, staffColumns)
	rows, err := r.pool.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaff(rows)
}

func (r *staffRepository) CountByManager(ctx context.Context, managerID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales_staff WHERE manager_id=$1`, managerID).Scan(&count)
	return count, err
}

func scanStaff(rows pgx.Rows) ([]domain.SalesStaff, error) {
	var result []domain.SalesStaff
	for rows.Next() {
		var staff domain.SalesStaff
		if err := rows.Scan(
			&staff.SalesID,
			&staff.Name,
			&staff.Email,
			&staff.PasswordHash,
			&staff.Department,
			&staff.Position,
			&staff.Role,
			&staff.ManagerID,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}
