package domain

import "time"

// MetricStatus classifies how a metric is tracking for a month.
type MetricStatus string

const (
	MetricStatusOnTrack  MetricStatus = "on_track"
	MetricStatusAtRisk   MetricStatus = "at_risk"
	MetricStatusOffTrack MetricStatus = "off_track"
)

// MetricUpdate records actual-vs-target for one metric in one month.
// Status is empty on unsaved schedule placeholders.
type MetricUpdate struct {
	Metric string       `json:"metric"`
	Target string       `json:"target"`
	Actual string       `json:"actual"`
	Status MetricStatus `json:"status"`
}

// Progress holds one month's metric updates for an SLA. Month is always the
// first day of the month at midnight UTC; at most one record exists per
// (SLA, month) pair.
type Progress struct {
	ID              string
	SLAID           string
	Month           time.Time
	Updates         []MetricUpdate
	OverallComments string
	UpdatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
