package domain

import "time"

// ReviewDecision enumerates outcomes of a target department's review.
type ReviewDecision string

const (
	ReviewDecisionAccepted ReviewDecision = "accepted"
	ReviewDecisionReturned ReviewDecision = "returned"
)

// Review is an append-only audit record of a review action. An SLA may
// accumulate several across resubmission cycles.
type Review struct {
	ID         string
	SLAID      string
	ReviewedBy string
	Decision   ReviewDecision
	Comments   string
	CreatedAt  time.Time
}
