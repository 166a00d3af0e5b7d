package dto

import (
	"time"

	"github.com/spec-kit/sla-service/internal/domain"
)

// MetricRequest describes one embedded metric.
type MetricRequest struct {
	Name        string `json:"name" validate:"required"`
	Target      string `json:"target"`
	Measurement string `json:"measurement"`
}

// CreateSLARequest payload. Dates use YYYY-MM-DD or RFC3339; raisingDept is
// ignored if supplied, the creator's department always wins.
type CreateSLARequest struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	TargetDept  string             `json:"targetDept" validate:"required"`
	Metrics     []MetricRequest    `json:"metrics" validate:"dive"`
	StartDate   string             `json:"startDate" validate:"required"`
	EndDate     string             `json:"endDate" validate:"required"`
	Priority    domain.SLAPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Attachments []string           `json:"attachments"`
}

// ReviewSLARequest payload.
type ReviewSLARequest struct {
	Decision domain.ReviewDecision `json:"decision" validate:"required"`
	Comments string                `json:"comments"`
}

// SLAResponse is the wire shape of an SLA. CreatedBy holds the creator's ID;
// Creator is populated on single fetches.
type SLAResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	RaisingDept string             `json:"raisingDept"`
	TargetDept  string             `json:"targetDept"`
	Metrics     []domain.Metric    `json:"metrics"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     time.Time          `json:"endDate"`
	Priority    domain.SLAPriority `json:"priority"`
	Status      domain.SLAStatus   `json:"status"`
	Attachments []string           `json:"attachments"`
	CreatedBy   string             `json:"createdBy"`
	Creator     *UserRef           `json:"creator,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ReviewResponse is the wire shape of a review record.
type ReviewResponse struct {
	ID         string                `json:"id"`
	SLA        string                `json:"sla"`
	ReviewedBy string                `json:"reviewedBy"`
	Decision   domain.ReviewDecision `json:"decision"`
	Comments   string                `json:"comments"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// ReviewResultResponse pairs the transitioned SLA with its review record.
type ReviewResultResponse struct {
	SLA    SLAResponse    `json:"sla"`
	Review ReviewResponse `json:"review"`
}

// NewSLAResponse maps a domain SLA.
func NewSLAResponse(sla *domain.SLA) SLAResponse {
	return SLAResponse{
		ID:          sla.ID,
		Title:       sla.Title,
		Description: sla.Description,
		RaisingDept: sla.RaisingDept,
		TargetDept:  sla.TargetDept,
		Metrics:     sla.Metrics,
		StartDate:   sla.StartDate,
		EndDate:     sla.EndDate,
		Priority:    sla.Priority,
		Status:      sla.Status,
		Attachments: sla.Attachments,
		CreatedBy:   sla.CreatedBy,
		CreatedAt:   sla.CreatedAt,
		UpdatedAt:   sla.UpdatedAt,
	}
}

// NewReviewResponse maps a domain review.
func NewReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		SLA:        review.SLAID,
		ReviewedBy: review.ReviewedBy,
		Decision:   review.Decision,
		Comments:   review.Comments,
		CreatedAt:  review.CreatedAt,
	}
}
