package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-service/internal/domain"
)

// ProgressRepository manages monthly progress records.
type ProgressRepository interface {
	Upsert(ctx context.Context, progress *domain.Progress) error
	ListBySLA(ctx context.Context, slaID string) ([]domain.Progress, error)
	ListAll(ctx context.Context) ([]domain.Progress, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Progress, error)
}

type progressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository builds repository.
func NewProgressRepository(pool *pgxpool.Pool) ProgressRepository {
	return &progressRepository{pool: pool}
}

const progressColumns = `id, sla_id, month, updates, overall_comments, updated_by, created_at, updated_at`

// Upsert atomically creates or replaces the record for (sla, month). The
// unique constraint on (sla_id, month) makes concurrent saves for the same
// month serialize instead of duplicating rows; the losing writer replaces
// updates, overall_comments and updated_by in place.
func (r *progressRepository) Upsert(ctx context.Context, progress *domain.Progress) error {
	const query = `
        INSERT INTO progress (sla_id, month, updates, overall_comments, updated_by)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (sla_id, month) DO UPDATE
            SET updates=EXCLUDED.updates,
                overall_comments=EXCLUDED.overall_comments,
                updated_by=EXCLUDED.updated_by,
                updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		progress.SLAID,
		progress.Month,
		progress.Updates,
		progress.OverallComments,
		progress.UpdatedBy,
	).Scan(&progress.ID, &progress.CreatedAt, &progress.UpdatedAt)
}

func (r *progressRepository) ListBySLA(ctx context.Context, slaID string) ([]domain.Progress, error) {
	const query = `SELECT ` + progressColumns + ` FROM progress WHERE sla_id=$1 ORDER BY month ASC`
	rows, err := r.pool.Query(ctx, query, slaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProgress(rows)
}

func (r *progressRepository) ListAll(ctx context.Context) ([]domain.Progress, error) {
	const query = `SELECT ` + progressColumns + ` FROM progress ORDER BY month ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProgress(rows)
}

// GetByIDs batch-fetches progress records for read-time joins.
func (r *progressRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Progress, error) {
	result := make(map[string]domain.Progress, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const query = `SELECT ` + progressColumns + ` FROM progress WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := scanProgress(rows)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		result[record.ID] = record
	}
	return result, nil
}

func scanProgress(rows pgx.Rows) ([]domain.Progress, error) {
	var result []domain.Progress
	for rows.Next() {
		var progress domain.Progress
		if err := rows.Scan(
			&progress.ID,
			&progress.SLAID,
			&progress.Month,
			&progress.Updates,
			&progress.OverallComments,
			&progress.UpdatedBy,
			&progress.CreatedAt,
			&progress.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, progress)
	}
	return result, rows.Err()
}
