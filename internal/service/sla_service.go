package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sla-service/internal/domain"
	"github.com/spec-kit/sla-service/internal/events"
	"github.com/spec-kit/sla-service/internal/repository"
	apperrors "github.com/spec-kit/sla-service/pkg/util"
)

// SLAService coordinates the SLA lifecycle: creation, submission and review.
type SLAService struct {
	slas        repository.SLARepository
	reviews     repository.ReviewRepository
	departments repository.DepartmentRepository
	users       repository.UserRepository
	dispatcher  events.Dispatcher
}

// SLADependencies bundles repositories for the lifecycle service.
type SLADependencies struct {
	SLARepo        repository.SLARepository
	ReviewRepo     repository.ReviewRepository
	DepartmentRepo repository.DepartmentRepository
	UserRepo       repository.UserRepository
	Dispatcher     events.Dispatcher
}

// SLACreateInput describes SLA creation payload. RaisingDept is never part of
// the input: it always comes from the creator's department.
type SLACreateInput struct {
	Title       string
	Description string
	TargetDept  string
	Metrics     []domain.Metric
	StartDate   time.Time
	EndDate     time.Time
	Priority    domain.SLAPriority
	Attachments []string
}

// SLADetail is an SLA with its creator resolved at read time.
type SLADetail struct {
	SLA     domain.SLA
	Creator *domain.User
}

// ReviewResult pairs the updated SLA with the review audit record.
type ReviewResult struct {
	SLA    domain.SLA
	Review domain.Review
}

// NewSLAService constructs the service.
func NewSLAService(deps SLADependencies) *SLAService {
	return &SLAService{
		slas:        deps.SLARepo,
		reviews:     deps.ReviewRepo,
		departments: deps.DepartmentRepo,
		users:       deps.UserRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Create validates and stores a new SLA in draft status on behalf of creator.
func (s *SLAService) Create(ctx context.Context, creator *domain.User, input SLACreateInput) (*domain.SLA, error) {
	title := strings.TrimSpace(input.Title)
	targetDept := strings.TrimSpace(input.TargetDept)
	if title == "" || targetDept == "" || input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, apperrors.NewValidationError("title, targetDept, startDate, endDate required", nil)
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperrors.NewValidationError("startDate must not be after endDate", nil)
	}
	if targetDept == creator.Department {
		return nil, apperrors.NewValidationError("target department must differ from raising department", nil)
	}
	if _, err := s.departments.GetByName(ctx, targetDept); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown target department", map[string]any{"targetDept": targetDept})
		}
		return nil, err
	}

	sla := &domain.SLA{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		RaisingDept: creator.Department,
		TargetDept:  targetDept,
		Metrics:     input.Metrics,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Priority:    input.Priority,
		Status:      domain.SLAStatusDraft,
		Attachments: input.Attachments,
		CreatedBy:   creator.ID,
	}
	if sla.Priority == "" {
		sla.Priority = domain.SLAPriorityMedium
	}
	if sla.Metrics == nil {
		sla.Metrics = []domain.Metric{}
	}
	if sla.Attachments == nil {
		sla.Attachments = []string{}
	}

	if err := s.slas.Create(ctx, sla); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:  events.EventSLACreated,
		SLAID: sla.ID,
		Actor: actorFor(creator),
		Payload: events.SLACreatedPayload{
			Title:       sla.Title,
			RaisingDept: sla.RaisingDept,
			TargetDept:  sla.TargetDept,
			Priority:    sla.Priority,
		},
	})
	return sla, nil
}

// GetByID fetches an SLA with its creator resolved.
func (s *SLAService) GetByID(ctx context.Context, id string) (*SLADetail, error) {
	sla, err := s.slas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SLA", map[string]any{"id": id})
		}
		return nil, err
	}
	detail := &SLADetail{SLA: *sla}
	if creator, err := s.users.GetByID(ctx, sla.CreatedBy); err == nil {
		detail.Creator = creator
	}
	return detail, nil
}

// Submit moves an SLA to submitted. Any prior status is accepted: resubmission
// after a return goes through the same path, and there is no guard against
// resubmitting an already active SLA.
func (s *SLAService) Submit(ctx context.Context, actor *domain.User, id string) (*domain.SLA, error) {
	existing, err := s.slas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SLA", map[string]any{"id": id})
		}
		return nil, err
	}

	sla, err := s.slas.UpdateStatus(ctx, id, domain.SLAStatusSubmitted)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventSLASubmitted,
		SLAID:   sla.ID,
		Actor:   actorFor(actor),
		Payload: events.SLASubmittedPayload{OldStatus: existing.Status},
	})
	return sla, nil
}

// Review records the target department's decision and transitions the SLA:
// accepted goes active, returned goes back to the raiser. The review row is
// written before the status flip; a crash between the two leaves a review
// with a stale SLA status, which reads can reconcile from the latest review.
func (s *SLAService) Review(ctx context.Context, reviewer *domain.User, id string, decision domain.ReviewDecision, comments string) (*ReviewResult, error) {
	if decision != domain.ReviewDecisionAccepted && decision != domain.ReviewDecisionReturned {
		return nil, apperrors.NewValidationError("decision must be accepted or returned", map[string]any{"decision": decision})
	}
	if _, err := s.slas.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SLA", map[string]any{"id": id})
		}
		return nil, err
	}

	review := &domain.Review{
		SLAID:      id,
		ReviewedBy: reviewer.ID,
		Decision:   decision,
		Comments:   comments,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	newStatus := domain.SLAStatusReturned
	if decision == domain.ReviewDecisionAccepted {
		newStatus = domain.SLAStatusActive
	}
	sla, err := s.slas.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventSLAReviewed,
		SLAID: sla.ID,
		Actor: actorFor(reviewer),
		Payload: events.SLAReviewedPayload{
			ReviewID:  review.ID,
			Decision:  decision,
			NewStatus: newStatus,
		},
	})
	return &ReviewResult{SLA: *sla, Review: *review}, nil
}

// ListByUser returns all SLAs created by the user, drafts included.
func (s *SLAService) ListByUser(ctx context.Context, userID string) ([]domain.SLA, error) {
	return s.slas.ListByCreator(ctx, userID)
}

// ListByDepartment returns non-draft SLAs raised by or targeting the department.
func (s *SLAService) ListByDepartment(ctx context.Context, deptName string) ([]domain.SLA, error) {
	return s.slas.ListByDepartment(ctx, deptName)
}

// ListAll returns every SLA.
func (s *SLAService) ListAll(ctx context.Context) ([]domain.SLA, error) {
	return s.slas.ListAll(ctx)
}

func (s *SLAService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: user.ID, Department: user.Department}
}
