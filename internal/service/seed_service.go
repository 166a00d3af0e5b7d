package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-service/internal/auth"
	"github.com/spec-kit/sla-service/internal/domain"
	"github.com/spec-kit/sla-service/internal/repository"
)

// SeedService loads the demo departments and users at startup. Seeding is
// idempotent: every record is upserted by its natural key.
type SeedService struct {
	departments repository.DepartmentRepository
	users       repository.UserRepository
	bcryptCost  int
	logger      *zap.Logger
}

// NewSeedService constructs the service.
func NewSeedService(departments repository.DepartmentRepository, users repository.UserRepository, bcryptCost int, logger *zap.Logger) *SeedService {
	return &SeedService{
		departments: departments,
		users:       users,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

type seedUser struct {
	username   string
	password   string
	department string
	role       domain.Role
}

// Seed upserts the demo reference data. Demo credentials are hashed before
// they reach the store.
func (s *SeedService) Seed(ctx context.Context) error {
	departments := []string{"Finance", "HR", "IT", "Operations", "Marketing"}
	users := []seedUser{
		{username: "finance1", password: "pass123", department: "Finance", role: domain.RoleDeptHead},
		{username: "hr1", password: "pass123", department: "HR", role: domain.RoleDeptHead},
		{username: "it1", password: "pass123", department: "IT", role: domain.RoleDeptHead},
		{username: "operations1", password: "pass123", department: "Operations", role: domain.RoleUser},
		{username: "admin", password: "admin123", department: "Admin", role: domain.RoleAdmin},
	}

	for _, name := range departments {
		dept := &domain.Department{Name: name}
		if err := s.departments.Upsert(ctx, dept); err != nil {
			return err
		}
	}

	for _, seed := range users {
		hash, err := auth.HashPassword(seed.password, s.bcryptCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Username:     seed.username,
			PasswordHash: hash,
			Department:   seed.department,
			Role:         seed.role,
		}
		if err := s.users.Upsert(ctx, user); err != nil {
			return err
		}
	}

	s.logger.Info("demo data seeded",
		zap.Int("departments", len(departments)),
		zap.Int("users", len(users)))
	return nil
}
