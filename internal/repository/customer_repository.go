package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// CustomerFilter captures customer search parameters.
type CustomerFilter struct {
	Search *string
	Limit  int
	Offset int
}

// CustomerRepository encapsulates customer master data persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, customerID int64) error
	GetByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error)
	Count(ctx context.Context, filter CustomerFilter) (int64, error)
	Exists(ctx context.Context, customerID int64) (bool, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `customer_id, customer_name, company_name, department, phone, email, address, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (customer_name, company_name, department, phone, email, address)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING customer_id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		customer.CustomerName,
		customer.CompanyName,
		customer.Department,
		customer.Phone,
		customer.Email,
		customer.Address,
	).Scan(&customer.CustomerID, &customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET customer_name=$1, company_name=$2, department=$3,
            phone=$4, email=$5, address=$6, updated_at=NOW()
        WHERE customer_id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		customer.CustomerName,
		customer.CompanyName,
		customer.Department,
		customer.Phone,
		customer.Email,
		customer.Address,
		customer.CustomerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, customerID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE customer_id=$1`, customerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE customer_id=$1`, customerColumns)
	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&customer.CustomerID,
		&customer.CustomerName,
		&customer.CompanyName,
		&customer.Department,
		&customer.Phone,
		&customer.Email,
		&customer.Address,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func customerFilterClauses(filter CustomerFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(customer_name) LIKE %s OR LOWER(company_name) LIKE %s)", placeholder, placeholder))
	}
	return clauses, args
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error) {
	clauses, args := customerFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM customers WHERE %s ORDER BY customer_id LIMIT %d OFFSET %d`,
		customerColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.CustomerID,
			&customer.CustomerName,
			&customer.CompanyName,
			&customer.Department,
			&customer.Phone,
			&customer.Email,
			&customer.Address,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}

func (r *customerRepository) Count(ctx context.Context, filter CustomerFilter) (int64, error) {
	clauses, args := customerFilterClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM customers WHERE %s`, strings.Join(clauses, " AND "))

	var count int64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *customerRepository) Exists(ctx context.Context, customerID int64) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE customer_id=$1`, customerID).Scan(&count)
	return count > 0, err
}
