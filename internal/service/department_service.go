package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-service/internal/domain"
	"github.com/spec-kit/sla-service/internal/persistence"
	"github.com/spec-kit/sla-service/internal/repository"
)

const deptCacheKey = "departments:all"

// DepartmentService serves the static department reference list, cached in
// Redis for a short TTL. The cache is best effort: any Redis failure falls
// back to the store.
type DepartmentService struct {
	departments repository.DepartmentRepository
	redis       *persistence.Redis
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, redis *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		redis:       redis,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// List returns all departments ordered by name.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, departments)
	return departments, nil
}

func (s *DepartmentService) fromCache(ctx context.Context) ([]domain.Department, bool) {
	if s.redis == nil || s.redis.Client == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := s.redis.Client.Get(ctx, deptCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var departments []domain.Department
	if err := json.Unmarshal(raw, &departments); err != nil {
		return nil, false
	}
	return departments, true
}

func (s *DepartmentService) toCache(ctx context.Context, departments []domain.Department) {
	if s.redis == nil || s.redis.Client == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(departments)
	if err != nil {
		return
	}
	if err := s.redis.Client.Set(ctx, deptCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("department cache write failed", zap.Error(err))
	}
}
