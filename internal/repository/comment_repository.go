package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-service/internal/domain"
)

// CommentRepository manages SLA discussion entries.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListBySLA(ctx context.Context, slaID string) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (sla_id, user_id, content, progress_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.SLAID,
		comment.UserID,
		comment.Content,
		comment.ProgressID,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListBySLA(ctx context.Context, slaID string) ([]domain.Comment, error) {
	const query = `
        SELECT id, sla_id, user_id, content, progress_id, created_at
        FROM comments WHERE sla_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, slaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.SLAID,
			&comment.UserID,
			&comment.Content,
			&comment.ProgressID,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
