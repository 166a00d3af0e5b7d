package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-service/internal/api/dto"
	"github.com/spec-kit/sla-service/internal/service"
)

// ReportsHandler serves dashboard aggregates.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// DepartmentSummary GET /reports/departments.
func (h *ReportsHandler) DepartmentSummary(c *fiber.Ctx) error {
	counts, err := h.service.DepartmentSummary(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentStatusResponse, 0, len(counts))
	for dept, count := range counts {
		items = append(items, dto.DepartmentStatusResponse{
			Department: dept,
			Pending:    count.Pending,
			Active:     count.Active,
			Overdue:    count.Overdue,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Department < items[j].Department })
	return c.JSON(items)
}

// Compliance GET /reports/compliance.
func (h *ReportsHandler) Compliance(c *fiber.Ctx) error {
	report, err := h.service.Compliance(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.SLAComplianceResponse, 0, len(report))
	for _, row := range report {
		items = append(items, dto.SLAComplianceResponse{
			ID:         row.SLAID,
			Title:      row.Title,
			Department: row.Department,
			Compliance: row.Compliance,
			Trend:      string(row.Trend),
		})
	}
	return c.JSON(items)
}
