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

// CommentService appends and lists SLA discussion entries.
type CommentService struct {
	comments   repository.CommentRepository
	slas       repository.SLARepository
	users      repository.UserRepository
	progress   repository.ProgressRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles repositories for the discussion log.
type CommentDependencies struct {
	CommentRepo  repository.CommentRepository
	SLARepo      repository.SLARepository
	UserRepo     repository.UserRepository
	ProgressRepo repository.ProgressRepository
	Dispatcher   events.Dispatcher
}

// CommentEntry is a comment with its author and, when tied to a month,
// the referenced progress resolved at read time.
type CommentEntry struct {
	Comment  domain.Comment
	Author   *domain.User
	Progress *domain.Progress
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		slas:       deps.SLARepo,
		users:      deps.UserRepo,
		progress:   deps.ProgressRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Add appends a comment to an SLA's discussion, optionally tied to a
// progress record.
func (s *CommentService) Add(ctx context.Context, author *domain.User, slaID, content string, progressID *string) (*CommentEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	if _, err := s.slas.GetByID(ctx, slaID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SLA", map[string]any{"id": slaID})
		}
		return nil, err
	}

	comment := &domain.Comment{
		SLAID:      slaID,
		UserID:     author.ID,
		Content:    content,
		ProgressID: progressID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventCommentAdded,
		SLAID: slaID,
		Actor: actorFor(author),
		Payload: events.CommentAddedPayload{
			CommentID:  comment.ID,
			ProgressID: progressID,
			Preview:    preview(content, 120),
		},
	})
	return &CommentEntry{Comment: *comment, Author: author}, nil
}

// List returns the SLA's comments ordered by creation time ascending. Author
// display fields and referenced progress months are resolved in one batch
// fetch each, not stored on the comment.
func (s *CommentService) List(ctx context.Context, slaID string) ([]CommentEntry, error) {
	comments, err := s.comments.ListBySLA(ctx, slaID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(comments))
	progressIDs := make([]string, 0)
	for _, comment := range comments {
		userIDs = append(userIDs, comment.UserID)
		if comment.ProgressID != nil {
			progressIDs = append(progressIDs, *comment.ProgressID)
		}
	}

	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	progressRecords, err := s.progress.GetByIDs(ctx, progressIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]CommentEntry, 0, len(comments))
	for _, comment := range comments {
		entry := CommentEntry{Comment: comment}
		if user, ok := users[comment.UserID]; ok {
			u := user
			entry.Author = &u
		}
		if comment.ProgressID != nil {
			if record, ok := progressRecords[*comment.ProgressID]; ok {
				p := record
				entry.Progress = &p
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
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
