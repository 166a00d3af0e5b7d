package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-service/internal/api/dto"
	"github.com/spec-kit/sla-service/internal/auth"
	"github.com/spec-kit/sla-service/internal/service"
	apperrors "github.com/spec-kit/sla-service/pkg/util"
)

// CommentsHandler manages SLA discussion endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// Create POST /comments/:slaId.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	entry, err := h.service.Add(c.Context(), principal.User, c.Params("slaId"), req.Content, req.Progress)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCommentResponse(&entry.Comment, entry.Author, entry.Progress))
}

// List GET /comments/:slaId.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	entries, err := h.service.List(c.Context(), c.Params("slaId"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewCommentResponse(&entries[i].Comment, entries[i].Author, entries[i].Progress))
	}
	return c.JSON(items)
}
