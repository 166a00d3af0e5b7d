package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sla-service/internal/domain"
	"github.com/spec-kit/sla-service/internal/events"
	"github.com/spec-kit/sla-service/internal/repository"
	apperrors "github.com/spec-kit/sla-service/pkg/util"
)

// ProgressService records monthly metric updates and derives the projected
// schedule for an SLA's date range.
type ProgressService struct {
	progress   repository.ProgressRepository
	slas       repository.SLARepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ProgressDependencies bundles repositories for the tracker.
type ProgressDependencies struct {
	ProgressRepo repository.ProgressRepository
	SLARepo      repository.SLARepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
}

// ProgressRecordInput describes a month's worth of metric updates.
type ProgressRecordInput struct {
	Month           time.Time
	Updates         []domain.MetricUpdate
	OverallComments string
}

// ProgressEntry is a stored record with its author resolved at read time.
type ProgressEntry struct {
	Progress domain.Progress
	Author   *domain.User
}

// ScheduleMonth is one month of the derived schedule. Stored is nil for
// months that only exist as placeholders; placeholder updates carry the
// metric targets with empty actual and status.
type ScheduleMonth struct {
	Month   time.Time
	Stored  *domain.Progress
	Updates []domain.MetricUpdate
}

// NewProgressService constructs the service.
func NewProgressService(deps ProgressDependencies) *ProgressService {
	return &ProgressService{
		progress:   deps.ProgressRepo,
		slas:       deps.SLARepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Record upserts the progress record for (sla, month). The month is
// normalized to the first of the month before the write, and the store's
// unique key makes the operation atomic: a second save for the same month
// replaces updates, overallComments and updatedBy in place.
func (s *ProgressService) Record(ctx context.Context, actor *domain.User, slaID string, input ProgressRecordInput) (*domain.Progress, error) {
	if input.Month.IsZero() {
		return nil, apperrors.NewValidationError("month required", nil)
	}
	for _, update := range input.Updates {
		switch update.Status {
		case domain.MetricStatusOnTrack, domain.MetricStatusAtRisk, domain.MetricStatusOffTrack, "":
		default:
			return nil, apperrors.NewValidationError("invalid metric status", map[string]any{"status": update.Status})
		}
	}
	if _, err := s.slas.GetByID(ctx, slaID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SLA", map[string]any{"id": slaID})
		}
		return nil, err
	}

	record := &domain.Progress{
		SLAID:           slaID,
		Month:           FirstOfMonth(input.Month),
		Updates:         input.Updates,
		OverallComments: input.OverallComments,
		UpdatedBy:       actor.ID,
	}
	if record.Updates == nil {
		record.Updates = []domain.MetricUpdate{}
	}
	if err := s.progress.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventProgressRecorded,
		SLAID: slaID,
		Actor: actorFor(actor),
		Payload: events.ProgressRecordedPayload{
			ProgressID: record.ID,
			Month:      record.Month,
			Updates:    len(record.Updates),
		},
	})
	return record, nil
}

// List returns the SLA's progress records ordered by month ascending, each
// with its author resolved.
func (s *ProgressService) List(ctx context.Context, slaID string) ([]ProgressEntry, error) {
	records, err := s.progress.ListBySLA(ctx, slaID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(records))
	for _, record := range records {
		userIDs = append(userIDs, record.UpdatedBy)
	}
	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]ProgressEntry, 0, len(records))
	for _, record := range records {
		entry := ProgressEntry{Progress: record}
		if user, ok := users[record.UpdatedBy]; ok {
			u := user
			entry.Author = &u
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ListAll returns every progress record, the report data source.
func (s *ProgressService) ListAll(ctx context.Context) ([]domain.Progress, error) {
	return s.progress.ListAll(ctx)
}

// Schedule derives the projected monthly schedule for an SLA. It is
// recomputed from the SLA's current metrics and date range on every call;
// nothing here is cached or persisted.
func (s *ProgressService) Schedule(ctx context.Context, slaID string) ([]ScheduleMonth, error) {
	sla, err := s.slas.GetByID(ctx, slaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SLA", map[string]any{"id": slaID})
		}
		return nil, err
	}
	records, err := s.progress.ListBySLA(ctx, slaID)
	if err != nil {
		return nil, err
	}
	return BuildSchedule(sla, records), nil
}

// BuildSchedule is the pure derivation: one entry per calendar month from the
// start date's month through the end date's month inclusive. Months with a
// stored record carry it; the rest get one placeholder update per SLA metric.
func BuildSchedule(sla *domain.SLA, records []domain.Progress) []ScheduleMonth {
	byMonth := make(map[time.Time]domain.Progress, len(records))
	for _, record := range records {
		byMonth[FirstOfMonth(record.Month)] = record
	}

	var schedule []ScheduleMonth
	end := FirstOfMonth(sla.EndDate)
	for month := FirstOfMonth(sla.StartDate); !month.After(end); month = month.AddDate(0, 1, 0) {
		entry := ScheduleMonth{Month: month}
		if stored, ok := byMonth[month]; ok {
			s := stored
			entry.Stored = &s
			entry.Updates = stored.Updates
		} else {
			entry.Updates = placeholderUpdates(sla.Metrics)
		}
		schedule = append(schedule, entry)
	}
	return schedule
}

// FirstOfMonth normalizes a date to midnight UTC on the first of its month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func placeholderUpdates(metrics []domain.Metric) []domain.MetricUpdate {
	updates := make([]domain.MetricUpdate, 0, len(metrics))
	for _, metric := range metrics {
		updates = append(updates, domain.MetricUpdate{
			Metric: metric.Name,
			Target: metric.Target,
			Actual: "",
			Status: "",
		})
	}
	return updates
}

func (s *ProgressService) publishEvent(ctx context.Context, event events.Event) {
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
