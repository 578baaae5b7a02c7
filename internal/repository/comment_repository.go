package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// CommentRepository encapsulates comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, commentID, reportID int64) error
	GetByID(ctx context.Context, commentID, reportID int64) (*domain.Comment, error)
	ListByReport(ctx context.Context, reportID int64, commentType *domain.CommentType) ([]domain.Comment, error)
	ListRecentForOwner(ctx context.Context, ownerID int64, since time.Time) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository instantiates repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (report_id, commenter_id, comment_type, comment_content)
        VALUES ($1,$2,$3,$4)
        RETURNING comment_id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		comment.ReportID,
		comment.CommenterID,
		comment.CommentType,
		comment.CommentContent,
	).Scan(&comment.CommentID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	const query = `
        UPDATE comments SET comment_content=$1, updated_at=NOW()
        WHERE comment_id=$2 AND report_id=$3`
	cmd, err := r.pool.Exec(ctx, query, comment.CommentContent, comment.CommentID, comment.ReportID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID, reportID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE comment_id=$1 AND report_id=$2`, commentID, reportID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID, reportID int64) (*domain.Comment, error) {
	const query = `SELECT comment_id, report_id, commenter_id, comment_type, comment_content, created_at, updated_at
        FROM comments WHERE comment_id=$1 AND report_id=$2`
	var comment domain.Comment
	if err := r.pool.QueryRow(ctx, query, commentID, reportID).Scan(
		&comment.CommentID,
		&comment.ReportID,
		&comment.CommenterID,
		&comment.CommentType,
		&comment.CommentContent,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByReport(ctx context.Context, reportID int64, commentType *domain.CommentType) ([]domain.Comment, error) {
	query := `SELECT comment_id, report_id, commenter_id, comment_type, comment_content, created_at, updated_at
        FROM comments WHERE report_id=$1`
	args := []any{reportID}
	if commentType != nil {
		query += ` AND comment_type=$2`
		args = append(args, *commentType)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

// ListRecentForOwner returns comments left by others on the owner's reports
// since the given time. Feeds the dashboard unread-comment list.
func (r *commentRepository) ListRecentForOwner(ctx context.Context, ownerID int64, since time.Time) ([]domain.Comment, error) {
	const query = `
        SELECT c.comment_id, c.report_id, c.commenter_id, c.comment_type, c.comment_content, c.created_at, c.updated_at
        FROM comments c
        JOIN daily_reports dr ON dr.report_id = c.report_id
        WHERE dr.sales_id=$1 AND c.commenter_id<>$1 AND c.created_at >= $2
        ORDER BY c.created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func scanComments(rows pgx.Rows) ([]domain.Comment, error) {
	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.CommentID,
			&comment.ReportID,
			&comment.CommenterID,
			&comment.CommentType,
			&comment.CommentContent,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
