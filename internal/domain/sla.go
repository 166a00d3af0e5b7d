package domain

import "time"

// SLAStatus enumerates lifecycle states for SLAs.
type SLAStatus string

const (
	SLAStatusDraft     SLAStatus = "draft"
	SLAStatusSubmitted SLAStatus = "submitted"
	SLAStatusAccepted  SLAStatus = "accepted"
	SLAStatusReturned  SLAStatus = "returned"
	SLAStatusActive    SLAStatus = "active"
	SLAStatusCompleted SLAStatus = "completed"
)

// SLAPriority enumerates urgency levels.
type SLAPriority string

const (
	SLAPriorityLow    SLAPriority = "low"
	SLAPriorityMedium SLAPriority = "medium"
	SLAPriorityHigh   SLAPriority = "high"
)

// Metric is a named, measurable commitment embedded in an SLA.
type Metric struct {
	Name        string `json:"name"`
	Target      string `json:"target"`
	Measurement string `json:"measurement"`
}

// SLA is the aggregate for service-level agreements between departments.
// RaisingDept and TargetDept hold department names validated against the
// department set at creation time.
type SLA struct {
	ID          string
	Title       string
	Description string
	RaisingDept string
	TargetDept  string
	Metrics     []Metric
	StartDate   time.Time
	EndDate     time.Time
	Priority    SLAPriority
	Status      SLAStatus
	Attachments []string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
