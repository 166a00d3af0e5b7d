package events

import (
	"time"

	"github.com/spec-kit/sla-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSLACreated       EventType = "sla_created"
	EventSLASubmitted     EventType = "sla_submitted"
	EventSLAReviewed      EventType = "sla_reviewed"
	EventProgressRecorded EventType = "progress_recorded"
	EventCommentAdded     EventType = "comment_added"
)

// Actor identifies the user behind an event.
type Actor struct {
	UserID     string `json:"user_id"`
	Department string `json:"department,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SLAID     string      `json:"sla_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SLACreatedPayload payload.
type SLACreatedPayload struct {
	Title       string             `json:"title"`
	RaisingDept string             `json:"raising_dept"`
	TargetDept  string             `json:"target_dept"`
	Priority    domain.SLAPriority `json:"priority"`
}

// SLASubmittedPayload payload.
type SLASubmittedPayload struct {
	OldStatus domain.SLAStatus `json:"old_status"`
}

// SLAReviewedPayload payload.
type SLAReviewedPayload struct {
	ReviewID  string                `json:"review_id"`
	Decision  domain.ReviewDecision `json:"decision"`
	NewStatus domain.SLAStatus      `json:"new_status"`
}

// ProgressRecordedPayload payload.
type ProgressRecordedPayload struct {
	ProgressID string    `json:"progress_id"`
	Month      time.Time `json:"month"`
	Updates    int       `json:"updates"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID  string  `json:"comment_id"`
	ProgressID *string `json:"progress_id,omitempty"`
	Preview    string  `json:"preview"`
}
