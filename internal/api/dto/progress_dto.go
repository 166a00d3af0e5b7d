package dto

import (
	"time"

	"github.com/spec-kit/sla-service/internal/domain"
)

// MetricUpdateRequest is one metric's actual-vs-target for a month. Status
// may be empty when saving an untouched placeholder row.
type MetricUpdateRequest struct {
	Metric string              `json:"metric" validate:"required"`
	Target string              `json:"target"`
	Actual string              `json:"actual"`
	Status domain.MetricStatus `json:"status" validate:"omitempty,oneof=on_track at_risk off_track"`
}

// RecordProgressRequest payload. Month accepts YYYY-MM, YYYY-MM-DD or
// RFC3339 and is normalized to the first of the month.
type RecordProgressRequest struct {
	Month           string                `json:"month" validate:"required"`
	Updates         []MetricUpdateRequest `json:"updates" validate:"dive"`
	OverallComments string                `json:"overallComments"`
}

// ProgressResponse is the wire shape of a progress record. UpdatedByUser is
// populated on list reads.
type ProgressResponse struct {
	ID              string                `json:"id"`
	SLA             string                `json:"sla"`
	Month           time.Time             `json:"month"`
	Updates         []domain.MetricUpdate `json:"updates"`
	OverallComments string                `json:"overallComments"`
	UpdatedBy       string                `json:"updatedBy"`
	UpdatedByUser   *UserRef              `json:"updatedByUser,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// ScheduleMonthResponse is one month of the derived schedule. Recorded is
// false for placeholder months that have never been saved.
type ScheduleMonthResponse struct {
	Month      time.Time             `json:"month"`
	Recorded   bool                  `json:"recorded"`
	ProgressID string                `json:"progressId,omitempty"`
	Updates    []domain.MetricUpdate `json:"updates"`
}

// NewProgressResponse maps a domain progress record.
func NewProgressResponse(progress *domain.Progress) ProgressResponse {
	return ProgressResponse{
		ID:              progress.ID,
		SLA:             progress.SLAID,
		Month:           progress.Month,
		Updates:         progress.Updates,
		OverallComments: progress.OverallComments,
		UpdatedBy:       progress.UpdatedBy,
		CreatedAt:       progress.CreatedAt,
		UpdatedAt:       progress.UpdatedAt,
	}
}
