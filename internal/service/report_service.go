package service

import (
	"context"
	"math"
	"time"

	"github.com/spec-kit/sla-service/internal/domain"
	"github.com/spec-kit/sla-service/internal/repository"
)

// ReportService computes dashboard aggregates over the full SLA and progress
// collections. The computations themselves are pure functions so they can be
// applied to any already-fetched slice.
type ReportService struct {
	slas     repository.SLARepository
	progress repository.ProgressRepository
}

// NewReportService constructs the service.
func NewReportService(slas repository.SLARepository, progress repository.ProgressRepository) *ReportService {
	return &ReportService{slas: slas, progress: progress}
}

// DepartmentStatusCount holds per-department SLA counts by reporting bucket.
type DepartmentStatusCount struct {
	Pending int
	Active  int
	Overdue int
}

// Trend classifies a compliance rate. Thresholds only; no historical
// comparison is involved.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendSteady Trend = "steady"
	TrendDown   Trend = "down"
)

// SLACompliance is one SLA's compliance summary.
type SLACompliance struct {
	SLAID      string
	Title      string
	Department string
	Compliance int
	Trend      Trend
}

// DepartmentStatusCounts groups SLAs by raising department and counts them
// into reporting buckets. An SLA is pending while submitted and overdue when
// it is active past its end date as of now; overdue is derived here only and
// never written back to the record.
func DepartmentStatusCounts(slas []domain.SLA, now time.Time) map[string]DepartmentStatusCount {
	counts := make(map[string]DepartmentStatusCount)
	for _, sla := range slas {
		count := counts[sla.RaisingDept]
		switch sla.Status {
		case domain.SLAStatusSubmitted:
			count.Pending++
		case domain.SLAStatusActive:
			if sla.EndDate.Before(now) {
				count.Overdue++
			} else {
				count.Active++
			}
		}
		counts[sla.RaisingDept] = count
	}
	return counts
}

// ComplianceRate computes the percentage of the SLA's recorded metric updates
// marked on_track, rounded to the nearest integer; 0 with no recorded
// updates. The result does not depend on the order of the progress slice.
func ComplianceRate(sla domain.SLA, allProgress []domain.Progress) int {
	onTrack := 0
	total := 0
	for _, record := range allProgress {
		if record.SLAID != sla.ID {
			continue
		}
		for _, update := range record.Updates {
			total++
			if update.Status == domain.MetricStatusOnTrack {
				onTrack++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(onTrack) / float64(total) * 100))
}

// TrendFor maps a compliance rate to its trend label.
func TrendFor(compliance int) Trend {
	switch {
	case compliance > 80:
		return TrendUp
	case compliance > 60:
		return TrendSteady
	default:
		return TrendDown
	}
}

// ComplianceReport computes the per-SLA compliance table.
func ComplianceReport(slas []domain.SLA, allProgress []domain.Progress) []SLACompliance {
	report := make([]SLACompliance, 0, len(slas))
	for _, sla := range slas {
		rate := ComplianceRate(sla, allProgress)
		report = append(report, SLACompliance{
			SLAID:      sla.ID,
			Title:      sla.Title,
			Department: sla.RaisingDept,
			Compliance: rate,
			Trend:      TrendFor(rate),
		})
	}
	return report
}

// DepartmentSummary fetches all SLAs and aggregates status counts.
func (s *ReportService) DepartmentSummary(ctx context.Context) (map[string]DepartmentStatusCount, error) {
	slas, err := s.slas.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return DepartmentStatusCounts(slas, time.Now()), nil
}

// Compliance fetches all SLAs and progress and computes the compliance table.
func (s *ReportService) Compliance(ctx context.Context) ([]SLACompliance, error) {
	slas, err := s.slas.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := s.progress.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ComplianceReport(slas, progress), nil
}
