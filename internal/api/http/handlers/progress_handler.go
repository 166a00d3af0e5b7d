package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-service/internal/api/dto"
	"github.com/spec-kit/sla-service/internal/auth"
	"github.com/spec-kit/sla-service/internal/domain"
	"github.com/spec-kit/sla-service/internal/service"
	apperrors "github.com/spec-kit/sla-service/pkg/util"
)

// ProgressHandler manages monthly progress endpoints.
type ProgressHandler struct {
	service *service.ProgressService
}

// NewProgressHandler constructs handler.
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: progressService}
}

// Record POST /progress/:slaId.
func (h *ProgressHandler) Record(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.RecordProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("month required", nil)
	}
	month, err := parseMonth(req.Month)
	if err != nil {
		return apperrors.NewValidationError("invalid month", map[string]any{"month": req.Month})
	}

	updates := make([]domain.MetricUpdate, 0, len(req.Updates))
	for _, update := range req.Updates {
		updates = append(updates, domain.MetricUpdate{
			Metric: update.Metric,
			Target: update.Target,
			Actual: update.Actual,
			Status: update.Status,
		})
	}

	progress, err := h.service.Record(c.Context(), principal.User, c.Params("slaId"), service.ProgressRecordInput{
		Month:           month,
		Updates:         updates,
		OverallComments: req.OverallComments,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProgressResponse(progress))
}

// List GET /progress/:slaId.
func (h *ProgressHandler) List(c *fiber.Ctx) error {
	entries, err := h.service.List(c.Context(), c.Params("slaId"))
	if err != nil {
		return err
	}
	items := make([]dto.ProgressResponse, 0, len(entries))
	for i := range entries {
		resp := dto.NewProgressResponse(&entries[i].Progress)
		resp.UpdatedByUser = dto.NewUserRef(entries[i].Author)
		items = append(items, resp)
	}
	return c.JSON(items)
}

// ListAll GET /progress.
func (h *ProgressHandler) ListAll(c *fiber.Ctx) error {
	records, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ProgressResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewProgressResponse(&records[i]))
	}
	return c.JSON(items)
}

// Schedule GET /progress/:slaId/schedule.
func (h *ProgressHandler) Schedule(c *fiber.Ctx) error {
	schedule, err := h.service.Schedule(c.Context(), c.Params("slaId"))
	if err != nil {
		return err
	}
	items := make([]dto.ScheduleMonthResponse, 0, len(schedule))
	for _, month := range schedule {
		item := dto.ScheduleMonthResponse{
			Month:   month.Month,
			Updates: month.Updates,
		}
		if month.Stored != nil {
			item.Recorded = true
			item.ProgressID = month.Stored.ID
		}
		items = append(items, item)
	}
	return c.JSON(items)
}

func parseMonth(val string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized month format %q", val)
}
