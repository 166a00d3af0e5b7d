package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sla-service/internal/domain"
	"github.com/spec-kit/sla-service/internal/repository"
)

// Ensure mocks implement the repository interfaces.
var (
	_ repository.UserRepository       = (*mockUserRepository)(nil)
	_ repository.DepartmentRepository = (*mockDepartmentRepository)(nil)
	_ repository.SLARepository        = (*mockSLARepository)(nil)
	_ repository.ReviewRepository     = (*mockReviewRepository)(nil)
	_ repository.ProgressRepository   = (*mockProgressRepository)(nil)
	_ repository.CommentRepository    = (*mockCommentRepository)(nil)
)

func nextID(prefix string, n *int) string {
	*n++
	return fmt.Sprintf("%s-%d", prefix, *n)
}

// mockUserRepository implements repository.UserRepository for testing.
type mockUserRepository struct {
	users map[string]*domain.User
	seq   int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(_ context.Context, user *domain.User) error {
	user.ID = nextID("user", &m.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			existing.PasswordHash = user.PasswordHash
			existing.Department = user.Department
			existing.Role = user.Role
			*user = *existing
			return nil
		}
	}
	return m.Create(ctx, user)
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) GetByIDs(_ context.Context, ids []string) (map[string]domain.User, error) {
	result := make(map[string]domain.User)
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			result[id] = *user
		}
	}
	return result, nil
}

// mockDepartmentRepository implements repository.DepartmentRepository.
type mockDepartmentRepository struct {
	departments map[string]*domain.Department
	seq         int
}

func newMockDepartmentRepository(names ...string) *mockDepartmentRepository {
	m := &mockDepartmentRepository{departments: make(map[string]*domain.Department)}
	for _, name := range names {
		_ = m.Upsert(context.Background(), &domain.Department{Name: name})
	}
	return m
}

func (m *mockDepartmentRepository) Upsert(_ context.Context, dept *domain.Department) error {
	if existing, ok := m.departments[dept.Name]; ok {
		*dept = *existing
		return nil
	}
	dept.ID = nextID("dept", &m.seq)
	dept.CreatedAt = time.Now()
	dept.UpdatedAt = dept.CreatedAt
	stored := *dept
	m.departments[dept.Name] = &stored
	return nil
}

func (m *mockDepartmentRepository) GetByName(_ context.Context, name string) (*domain.Department, error) {
	if dept, ok := m.departments[name]; ok {
		copied := *dept
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockDepartmentRepository) List(_ context.Context) ([]domain.Department, error) {
	result := make([]domain.Department, 0, len(m.departments))
	for _, dept := range m.departments {
		result = append(result, *dept)
	}
	return result, nil
}

// mockSLARepository implements repository.SLARepository.
type mockSLARepository struct {
	slas      map[string]*domain.SLA
	seq       int
	createErr error
}

func newMockSLARepository() *mockSLARepository {
	return &mockSLARepository{slas: make(map[string]*domain.SLA)}
}

func (m *mockSLARepository) Create(_ context.Context, sla *domain.SLA) error {
	if m.createErr != nil {
		return m.createErr
	}
	sla.ID = nextID("sla", &m.seq)
	sla.CreatedAt = time.Now()
	sla.UpdatedAt = sla.CreatedAt
	stored := *sla
	m.slas[sla.ID] = &stored
	return nil
}

func (m *mockSLARepository) GetByID(_ context.Context, id string) (*domain.SLA, error) {
	if sla, ok := m.slas[id]; ok {
		copied := *sla
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockSLARepository) UpdateStatus(_ context.Context, id string, status domain.SLAStatus) (*domain.SLA, error) {
	sla, ok := m.slas[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	sla.Status = status
	sla.UpdatedAt = time.Now()
	copied := *sla
	return &copied, nil
}

func (m *mockSLARepository) ListByCreator(_ context.Context, userID string) ([]domain.SLA, error) {
	var result []domain.SLA
	for _, sla := range m.slas {
		if sla.CreatedBy == userID {
			result = append(result, *sla)
		}
	}
	return result, nil
}

func (m *mockSLARepository) ListByDepartment(_ context.Context, deptName string) ([]domain.SLA, error) {
	var result []domain.SLA
	for _, sla := range m.slas {
		if sla.Status == domain.SLAStatusDraft {
			continue
		}
		if sla.RaisingDept == deptName || sla.TargetDept == deptName {
			result = append(result, *sla)
		}
	}
	return result, nil
}

func (m *mockSLARepository) ListAll(_ context.Context) ([]domain.SLA, error) {
	result := make([]domain.SLA, 0, len(m.slas))
	for _, sla := range m.slas {
		result = append(result, *sla)
	}
	return result, nil
}

// mockReviewRepository implements repository.ReviewRepository.
type mockReviewRepository struct {
	reviews []domain.Review
	seq     int
}

func newMockReviewRepository() *mockReviewRepository {
	return &mockReviewRepository{}
}

func (m *mockReviewRepository) Create(_ context.Context, review *domain.Review) error {
	review.ID = nextID("review", &m.seq)
	review.CreatedAt = time.Now()
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *mockReviewRepository) ListBySLA(_ context.Context, slaID string) ([]domain.Review, error) {
	var result []domain.Review
	for _, review := range m.reviews {
		if review.SLAID == slaID {
			result = append(result, review)
		}
	}
	return result, nil
}

// mockProgressRepository implements repository.ProgressRepository with the
// same (sla, month) uniqueness the real store enforces.
type mockProgressRepository struct {
	records map[string]*domain.Progress
	seq     int
}

func newMockProgressRepository() *mockProgressRepository {
	return &mockProgressRepository{records: make(map[string]*domain.Progress)}
}

func progressKey(slaID string, month time.Time) string {
	return slaID + "|" + month.Format("2006-01")
}

func (m *mockProgressRepository) Upsert(_ context.Context, progress *domain.Progress) error {
	key := progressKey(progress.SLAID, progress.Month)
	if existing, ok := m.records[key]; ok {
		existing.Updates = progress.Updates
		existing.OverallComments = progress.OverallComments
		existing.UpdatedBy = progress.UpdatedBy
		existing.UpdatedAt = time.Now()
		*progress = *existing
		return nil
	}
	progress.ID = nextID("progress", &m.seq)
	progress.CreatedAt = time.Now()
	progress.UpdatedAt = progress.CreatedAt
	stored := *progress
	m.records[key] = &stored
	return nil
}

func (m *mockProgressRepository) ListBySLA(_ context.Context, slaID string) ([]domain.Progress, error) {
	var result []domain.Progress
	for _, record := range m.records {
		if record.SLAID == slaID {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (m *mockProgressRepository) ListAll(_ context.Context) ([]domain.Progress, error) {
	result := make([]domain.Progress, 0, len(m.records))
	for _, record := range m.records {
		result = append(result, *record)
	}
	return result, nil
}

func (m *mockProgressRepository) GetByIDs(_ context.Context, ids []string) (map[string]domain.Progress, error) {
	result := make(map[string]domain.Progress)
	for _, record := range m.records {
		for _, id := range ids {
			if record.ID == id {
				result[id] = *record
			}
		}
	}
	return result, nil
}

// mockCommentRepository implements repository.CommentRepository.
type mockCommentRepository struct {
	comments []domain.Comment
	seq      int
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{}
}

func (m *mockCommentRepository) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = nextID("comment", &m.seq)
	comment.CreatedAt = time.Now()
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *mockCommentRepository) ListBySLA(_ context.Context, slaID string) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, comment := range m.comments {
		if comment.SLAID == slaID {
			result = append(result, comment)
		}
	}
	return result, nil
}

func testUser(id, username, department string, role domain.Role) *domain.User {
	return &domain.User{
		ID:         id,
		Username:   username,
		Department: department,
		Role:       role,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
