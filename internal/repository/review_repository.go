package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-service/internal/domain"
)

// ReviewRepository manages the append-only review audit trail.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListBySLA(ctx context.Context, slaID string) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository builds repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (sla_id, reviewed_by, decision, comments)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		review.SLAID,
		review.ReviewedBy,
		review.Decision,
		review.Comments,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) ListBySLA(ctx context.Context, slaID string) ([]domain.Review, error) {
	const query = `
        SELECT id, sla_id, reviewed_by, decision, comments, created_at
        FROM reviews WHERE sla_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, slaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.SLAID,
			&review.ReviewedBy,
			&review.Decision,
			&review.Comments,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
