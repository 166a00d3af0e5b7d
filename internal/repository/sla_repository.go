package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-service/internal/domain"
)

// SLARepository encapsulates SLA persistence.
type SLARepository interface {
	Create(ctx context.Context, sla *domain.SLA) error
	GetByID(ctx context.Context, id string) (*domain.SLA, error)
	UpdateStatus(ctx context.Context, id string, status domain.SLAStatus) (*domain.SLA, error)
	ListByCreator(ctx context.Context, userID string) ([]domain.SLA, error)
	ListByDepartment(ctx context.Context, deptName string) ([]domain.SLA, error)
	ListAll(ctx context.Context) ([]domain.SLA, error)
}

type slaRepository struct {
	pool *pgxpool.Pool
}

// NewSLARepository instantiates repository.
func NewSLARepository(pool *pgxpool.Pool) SLARepository {
	return &slaRepository{pool: pool}
}

const slaColumns = `id, title, description, raising_dept, target_dept, metrics,
               start_date, end_date, priority, status, attachments, created_by,
               created_at, updated_at`

func (r *slaRepository) Create(ctx context.Context, sla *domain.SLA) error {
	const query = `
        INSERT INTO slas (title, description, raising_dept, target_dept, metrics,
                          start_date, end_date, priority, status, attachments, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sla.Title,
		sla.Description,
		sla.RaisingDept,
		sla.TargetDept,
		sla.Metrics,
		sla.StartDate,
		sla.EndDate,
		sla.Priority,
		sla.Status,
		sla.Attachments,
		sla.CreatedBy,
	).Scan(&sla.ID, &sla.CreatedAt, &sla.UpdatedAt)
}

func (r *slaRepository) GetByID(ctx context.Context, id string) (*domain.SLA, error) {
	const query = `SELECT ` + slaColumns + ` FROM slas WHERE id=$1`
	var sla domain.SLA
	if err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&sla)...); err != nil {
		return nil, err
	}
	return &sla, nil
}

// UpdateStatus flips the lifecycle status and returns the updated row.
func (r *slaRepository) UpdateStatus(ctx context.Context, id string, status domain.SLAStatus) (*domain.SLA, error) {
	const query = `
        UPDATE slas SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + slaColumns
	var sla domain.SLA
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(scanTargets(&sla)...); err != nil {
		return nil, err
	}
	return &sla, nil
}

func (r *slaRepository) ListByCreator(ctx context.Context, userID string) ([]domain.SLA, error) {
	const query = `SELECT ` + slaColumns + ` FROM slas WHERE created_by=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListByDepartment returns SLAs raised by or targeting the department,
// excluding drafts: drafts stay private to their creator.
func (r *slaRepository) ListByDepartment(ctx context.Context, deptName string) ([]domain.SLA, error) {
	const query = `SELECT ` + slaColumns + ` FROM slas
        WHERE (raising_dept=$1 OR target_dept=$1) AND status <> 'draft'
        ORDER BY created_at DESC`
	return r.list(ctx, query, deptName)
}

func (r *slaRepository) ListAll(ctx context.Context) ([]domain.SLA, error) {
	const query = `SELECT ` + slaColumns + ` FROM slas ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *slaRepository) list(ctx context.Context, query string, args ...any) ([]domain.SLA, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSLAs(rows)
}

func scanTargets(sla *domain.SLA) []any {
	return []any{
		&sla.ID,
		&sla.Title,
		&sla.Description,
		&sla.RaisingDept,
		&sla.TargetDept,
		&sla.Metrics,
		&sla.StartDate,
		&sla.EndDate,
		&sla.Priority,
		&sla.Status,
		&sla.Attachments,
		&sla.CreatedBy,
		&sla.CreatedAt,
		&sla.UpdatedAt,
	}
}

func scanSLAs(rows pgx.Rows) ([]domain.SLA, error) {
	var result []domain.SLA
	for rows.Next() {
		var sla domain.SLA
		if err := rows.Scan(scanTargets(&sla)...); err != nil {
			return nil, err
		}
		result = append(result, sla)
	}
	return result, rows.Err()
}
