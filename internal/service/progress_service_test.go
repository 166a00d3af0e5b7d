package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/sla-service/internal/domain"
	apperrors "github.com/spec-kit/sla-service/pkg/util"
)

func newProgressFixture(t *testing.T) (*ProgressService, *domain.SLA, *mockProgressRepository) {
	t.Helper()
	slaRepo := newMockSLARepository()
	progressRepo := newMockProgressRepository()

	sla := &domain.SLA{
		Title:       "Invoice turnaround",
		RaisingDept: "Finance",
		TargetDept:  "HR",
		Metrics: []domain.Metric{
			{Name: "response_time", Target: "24h", Measurement: "hours"},
			{Name: "accuracy", Target: "99%", Measurement: "percent"},
		},
		StartDate: date(2024, time.January, 15),
		EndDate:   date(2024, time.March, 10),
		Status:    domain.SLAStatusActive,
		CreatedBy: "user-1",
	}
	if err := slaRepo.Create(context.Background(), sla); err != nil {
		t.Fatalf("seed SLA: %v", err)
	}

	svc := NewProgressService(ProgressDependencies{
		ProgressRepo: progressRepo,
		SLARepo:      slaRepo,
		UserRepo:     newMockUserRepository(),
	})
	return svc, sla, progressRepo
}

func TestProgressRecordNormalizesMonth(t *testing.T) {
	svc, sla, _ := newProgressFixture(t)
	actor := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)

	record, err := svc.Record(context.Background(), actor, sla.ID, ProgressRecordInput{
		Month: date(2024, time.January, 17),
		Updates: []domain.MetricUpdate{
			{Metric: "response_time", Target: "24h", Actual: "20h", Status: domain.MetricStatusOnTrack},
		},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	want := date(2024, time.January, 1)
	if !record.Month.Equal(want) {
		t.Errorf("month = %v, want %v", record.Month, want)
	}
	if record.UpdatedBy != "user-1" {
		t.Errorf("updatedBy = %q, want user-1", record.UpdatedBy)
	}
}

func TestProgressRecordUpsertsSameMonth(t *testing.T) {
	svc, sla, progressRepo := newProgressFixture(t)
	actor := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)

	first, err := svc.Record(context.Background(), actor, sla.ID, ProgressRecordInput{
		Month: date(2024, time.January, 5),
		Updates: []domain.MetricUpdate{
			{Metric: "response_time", Target: "24h", Actual: "30h", Status: domain.MetricStatusAtRisk},
		},
	})
	if err != nil {
		t.Fatalf("first Record: %v", err)
	}

	other := testUser("user-2", "finance2", "Finance", domain.RoleUser)
	second, err := svc.Record(context.Background(), other, sla.ID, ProgressRecordInput{
		Month: date(2024, time.January, 28),
		Updates: []domain.MetricUpdate{
			{Metric: "response_time", Target: "24h", Actual: "20h", Status: domain.MetricStatusOnTrack},
		},
		OverallComments: "recovered",
	})
	if err != nil {
		t.Fatalf("second Record: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("second save created a new record: %q vs %q", second.ID, first.ID)
	}
	stored, err := progressRepo.ListBySLA(context.Background(), sla.ID)
	if err != nil {
		t.Fatalf("ListBySLA: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored records = %d, want 1 per (sla, month)", len(stored))
	}
	if stored[0].UpdatedBy != "user-2" {
		t.Errorf("updatedBy = %q, want the later author", stored[0].UpdatedBy)
	}
	if stored[0].Updates[0].Status != domain.MetricStatusOnTrack {
		t.Errorf("updates not replaced: %+v", stored[0].Updates)
	}
	if stored[0].OverallComments != "recovered" {
		t.Errorf("overallComments = %q", stored[0].OverallComments)
	}
}

func TestProgressRecordValidation(t *testing.T) {
	svc, sla, _ := newProgressFixture(t)
	actor := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)

	_, err := svc.Record(context.Background(), actor, sla.ID, ProgressRecordInput{})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("missing month: err = %v, want VALIDATION_FAILED", err)
	}

	_, err = svc.Record(context.Background(), actor, sla.ID, ProgressRecordInput{
		Month: date(2024, time.January, 1),
		Updates: []domain.MetricUpdate{
			{Metric: "response_time", Status: domain.MetricStatus("great")},
		},
	})
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("bad status: err = %v, want VALIDATION_FAILED", err)
	}

	_, err = svc.Record(context.Background(), actor, "missing", ProgressRecordInput{
		Month: date(2024, time.January, 1),
	})
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("missing SLA: err = %v, want NOT_FOUND", err)
	}
}

func TestScheduleSpansStartThroughEndMonths(t *testing.T) {
	svc, sla, _ := newProgressFixture(t)

	// Jan 15 through Mar 10 covers exactly Jan, Feb, Mar.
	schedule, err := svc.Schedule(context.Background(), sla.ID)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	wantMonths := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
	}
	if len(schedule) != len(wantMonths) {
		t.Fatalf("schedule length = %d, want %d", len(schedule), len(wantMonths))
	}
	for i, entry := range schedule {
		if !entry.Month.Equal(wantMonths[i]) {
			t.Errorf("month[%d] = %v, want %v", i, entry.Month, wantMonths[i])
		}
		if entry.Stored != nil {
			t.Errorf("month[%d] has a stored record, want placeholder", i)
		}
		if len(entry.Updates) != len(sla.Metrics) {
			t.Fatalf("month[%d] placeholder count = %d, want one per metric", i, len(entry.Updates))
		}
		for j, update := range entry.Updates {
			if update.Metric != sla.Metrics[j].Name || update.Target != sla.Metrics[j].Target {
				t.Errorf("placeholder[%d][%d] = %+v", i, j, update)
			}
			if update.Actual != "" || update.Status != "" {
				t.Errorf("placeholder[%d][%d] should have empty actual and status", i, j)
			}
		}
	}
}

func TestScheduleMergesStoredRecords(t *testing.T) {
	svc, sla, _ := newProgressFixture(t)
	actor := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)

	recorded, err := svc.Record(context.Background(), actor, sla.ID, ProgressRecordInput{
		Month: date(2024, time.February, 20),
		Updates: []domain.MetricUpdate{
			{Metric: "response_time", Target: "24h", Actual: "22h", Status: domain.MetricStatusOnTrack},
		},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	schedule, err := svc.Schedule(context.Background(), sla.ID)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(schedule) != 3 {
		t.Fatalf("schedule length = %d, want 3", len(schedule))
	}

	feb := schedule[1]
	if feb.Stored == nil || feb.Stored.ID != recorded.ID {
		t.Fatalf("February should carry the stored record, got %+v", feb.Stored)
	}
	if len(feb.Updates) != 1 || feb.Updates[0].Actual != "22h" {
		t.Errorf("February updates = %+v", feb.Updates)
	}
	if schedule[0].Stored != nil || schedule[2].Stored != nil {
		t.Error("January and March should remain placeholders")
	}
}

func TestFirstOfMonth(t *testing.T) {
	in := time.Date(2024, time.July, 31, 18, 45, 12, 0, time.FixedZone("X", 3600))
	got := FirstOfMonth(in)
	want := date(2024, time.July, 1)
	if !got.Equal(want) {
		t.Errorf("FirstOfMonth(%v) = %v, want %v", in, got, want)
	}
}
