package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-service/internal/api/dto"
	"github.com/spec-kit/sla-service/internal/auth"
	"github.com/spec-kit/sla-service/internal/domain"
	"github.com/spec-kit/sla-service/internal/service"
	apperrors "github.com/spec-kit/sla-service/pkg/util"
)

// SLAsHandler manages SLA lifecycle endpoints.
type SLAsHandler struct {
	service *service.SLAService
}

// NewSLAsHandler constructs handler.
func NewSLAsHandler(slaService *service.SLAService) *SLAsHandler {
	return &SLAsHandler{service: slaService}
}

// Create POST /slas.
func (h *SLAsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateSLARequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("title, targetDept, startDate, endDate required", nil)
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return apperrors.NewValidationError("invalid startDate", map[string]any{"startDate": req.StartDate})
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return apperrors.NewValidationError("invalid endDate", map[string]any{"endDate": req.EndDate})
	}

	metrics := make([]domain.Metric, 0, len(req.Metrics))
	for _, metric := range req.Metrics {
		metrics = append(metrics, domain.Metric{
			Name:        metric.Name,
			Target:      metric.Target,
			Measurement: metric.Measurement,
		})
	}

	sla, err := h.service.Create(c.Context(), principal.User, service.SLACreateInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDept:  req.TargetDept,
		Metrics:     metrics,
		StartDate:   startDate,
		EndDate:     endDate,
		Priority:    req.Priority,
		Attachments: req.Attachments,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewSLAResponse(sla))
}

// Get GET /slas/:id.
func (h *SLAsHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := dto.NewSLAResponse(&detail.SLA)
	resp.Creator = dto.NewUserRef(detail.Creator)
	return c.JSON(resp)
}

// Submit PUT /slas/:id/submit.
func (h *SLAsHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	sla, err := h.service.Submit(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSLAResponse(sla))
}

// Review POST /slas/:id/review.
func (h *SLAsHandler) Review(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.ReviewSLARequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Review(c.Context(), principal.User, c.Params("id"), req.Decision, req.Comments)
	if err != nil {
		return err
	}
	return c.JSON(dto.ReviewResultResponse{
		SLA:    dto.NewSLAResponse(&result.SLA),
		Review: dto.NewReviewResponse(&result.Review),
	})
}

// ListByUser GET /slas/user/:userId.
func (h *SLAsHandler) ListByUser(c *fiber.Ctx) error {
	slas, err := h.service.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(slaResponses(slas))
}

// ListByDepartment GET /slas/dept/:deptName.
func (h *SLAsHandler) ListByDepartment(c *fiber.Ctx) error {
	slas, err := h.service.ListByDepartment(c.Context(), c.Params("deptName"))
	if err != nil {
		return err
	}
	return c.JSON(slaResponses(slas))
}

// List GET /slas.
func (h *SLAsHandler) List(c *fiber.Ctx) error {
	slas, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(slaResponses(slas))
}

func slaResponses(slas []domain.SLA) []dto.SLAResponse {
	items := make([]dto.SLAResponse, 0, len(slas))
	for i := range slas {
		items = append(items, dto.NewSLAResponse(&slas[i]))
	}
	return items
}

func parseDate(val string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", val)
}
