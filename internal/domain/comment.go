package domain

import "time"

// Comment is a discussion entry on an SLA, optionally tied to a specific
// month's progress record. Append-only, ordered by creation time.
type Comment struct {
	ID         string
	SLAID      string
	UserID     string
	Content    string
	ProgressID *string
	CreatedAt  time.Time
}
