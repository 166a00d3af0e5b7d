package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/sla-service/internal/domain"
	apperrors "github.com/spec-kit/sla-service/pkg/util"
)

func newSLAFixture() (*SLAService, *mockSLARepository, *mockReviewRepository) {
	slaRepo := newMockSLARepository()
	reviewRepo := newMockReviewRepository()
	deptRepo := newMockDepartmentRepository("Finance", "HR", "IT")
	return NewSLAService(SLADependencies{
		SLARepo:        slaRepo,
		ReviewRepo:     reviewRepo,
		DepartmentRepo: deptRepo,
		UserRepo:       newMockUserRepository(),
	}), slaRepo, reviewRepo
}

func validCreateInput() SLACreateInput {
	return SLACreateInput{
		Title:      "Invoice turnaround",
		TargetDept: "HR",
		Metrics: []domain.Metric{
			{Name: "response_time", Target: "24h", Measurement: "hours"},
		},
		StartDate: date(2024, time.January, 15),
		EndDate:   date(2024, time.March, 10),
	}
}

func TestSLACreateDefaults(t *testing.T) {
	svc, _, _ := newSLAFixture()
	creator := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)

	sla, err := svc.Create(context.Background(), creator, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sla.Status != domain.SLAStatusDraft {
		t.Errorf("status = %q, want draft", sla.Status)
	}
	if sla.Priority != domain.SLAPriorityMedium {
		t.Errorf("priority = %q, want medium", sla.Priority)
	}
	if sla.RaisingDept != "Finance" {
		t.Errorf("raisingDept = %q, want creator's department", sla.RaisingDept)
	}
	if sla.CreatedBy != "user-1" {
		t.Errorf("createdBy = %q, want user-1", sla.CreatedBy)
	}
	if sla.Attachments == nil {
		t.Error("attachments should default to empty slice, got nil")
	}
}

func TestSLACreateValidation(t *testing.T) {
	svc, _, _ := newSLAFixture()
	creator := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)

	cases := []struct {
		name   string
		mutate func(*SLACreateInput)
	}{
		{"missing title", func(in *SLACreateInput) { in.Title = "  " }},
		{"missing target dept", func(in *SLACreateInput) { in.TargetDept = "" }},
		{"missing start date", func(in *SLACreateInput) { in.StartDate = time.Time{} }},
		{"end before start", func(in *SLACreateInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) }},
		{"target equals raising dept", func(in *SLACreateInput) { in.TargetDept = "Finance" }},
		{"unknown target dept", func(in *SLACreateInput) { in.TargetDept = "Legal" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), creator, input)
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
				t.Fatalf("err = %v, want VALIDATION_FAILED", err)
			}
		})
	}
}

func TestSLASubmit(t *testing.T) {
	svc, slaRepo, _ := newSLAFixture()
	creator := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)

	sla, err := svc.Create(context.Background(), creator, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	submitted, err := svc.Submit(context.Background(), creator, sla.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submitted.Status != domain.SLAStatusSubmitted {
		t.Errorf("status = %q, want submitted", submitted.Status)
	}

	// Resubmission after a return goes through the same path.
	if _, err := slaRepo.UpdateStatus(context.Background(), sla.ID, domain.SLAStatusReturned); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	resubmitted, err := svc.Submit(context.Background(), creator, sla.ID)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if resubmitted.Status != domain.SLAStatusSubmitted {
		t.Errorf("status after resubmit = %q, want submitted", resubmitted.Status)
	}
}

func TestSLASubmitNotFound(t *testing.T) {
	svc, _, _ := newSLAFixture()
	actor := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)

	_, err := svc.Submit(context.Background(), actor, "missing")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestSLAReviewAccepted(t *testing.T) {
	svc, _, reviewRepo := newSLAFixture()
	creator := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)
	reviewer := testUser("user-2", "hr1", "HR", domain.RoleDeptHead)

	sla, err := svc.Create(context.Background(), creator, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Submit(context.Background(), creator, sla.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	result, err := svc.Review(context.Background(), reviewer, sla.ID, domain.ReviewDecisionAccepted, "looks good")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if result.SLA.Status != domain.SLAStatusActive {
		t.Errorf("status = %q, want active", result.SLA.Status)
	}
	if result.Review.ReviewedBy != "user-2" {
		t.Errorf("reviewedBy = %q, want user-2", result.Review.ReviewedBy)
	}
	if result.Review.Decision != domain.ReviewDecisionAccepted {
		t.Errorf("decision = %q, want accepted", result.Review.Decision)
	}

	reviews, _ := reviewRepo.ListBySLA(context.Background(), sla.ID)
	if len(reviews) != 1 {
		t.Errorf("review count = %d, want exactly 1", len(reviews))
	}
}

func TestSLAReviewReturned(t *testing.T) {
	svc, _, _ := newSLAFixture()
	creator := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)
	reviewer := testUser("user-2", "hr1", "HR", domain.RoleDeptHead)

	sla, err := svc.Create(context.Background(), creator, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Submit(context.Background(), creator, sla.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	result, err := svc.Review(context.Background(), reviewer, sla.ID, domain.ReviewDecisionReturned, "needs clearer targets")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if result.SLA.Status != domain.SLAStatusReturned {
		t.Errorf("status = %q, want returned", result.SLA.Status)
	}
	if result.Review.Comments != "needs clearer targets" {
		t.Errorf("comments = %q", result.Review.Comments)
	}
}

func TestSLAReviewInvalidDecision(t *testing.T) {
	svc, _, reviewRepo := newSLAFixture()
	reviewer := testUser("user-2", "hr1", "HR", domain.RoleDeptHead)

	_, err := svc.Review(context.Background(), reviewer, "sla-1", domain.ReviewDecision("maybe"), "")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("err = %v, want VALIDATION_FAILED", err)
	}
	if len(reviewRepo.reviews) != 0 {
		t.Error("invalid decision must not write a review record")
	}
}

func TestSLAReviewNotFound(t *testing.T) {
	svc, _, reviewRepo := newSLAFixture()
	reviewer := testUser("user-2", "hr1", "HR", domain.RoleDeptHead)

	_, err := svc.Review(context.Background(), reviewer, "missing", domain.ReviewDecisionAccepted, "")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
	if len(reviewRepo.reviews) != 0 {
		t.Error("review of a missing SLA must not write a review record")
	}
}

func TestSLAListByDepartmentExcludesDrafts(t *testing.T) {
	svc, _, _ := newSLAFixture()
	creator := testUser("user-1", "finance1", "Finance", domain.RoleDeptHead)

	draft, err := svc.Create(context.Background(), creator, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	visible, err := svc.Create(context.Background(), creator, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Submit(context.Background(), creator, visible.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// The target department sees submitted SLAs but not drafts.
	listed, err := svc.ListByDepartment(context.Background(), "HR")
	if err != nil {
		t.Fatalf("ListByDepartment: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != visible.ID {
		t.Fatalf("listed = %+v, want only the submitted SLA", listed)
	}

	// The creator still sees their own draft.
	mine, err := svc.ListByUser(context.Background(), creator.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("creator list = %d entries, want 2 including draft %s", len(mine), draft.ID)
	}
}
