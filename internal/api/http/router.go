package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-service/internal/api/http/handlers"
	"github.com/spec-kit/sla-service/internal/auth"
	"github.com/spec-kit/sla-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Departments    *handlers.DepartmentsHandler
	SLAs           *handlers.SLAsHandler
	Progress       *handlers.ProgressHandler
	Comments       *handlers.CommentsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/departments", cfg.Departments.List)

	// The full-collection listings feed the reporting dashboard; regular
	// users only see their own and their department's SLAs.
	elevated := auth.RequireRole(domain.RoleAdmin, domain.RoleDeptHead)

	slas := protected.Group("/slas")
	slas.Post("/", cfg.SLAs.Create)
	slas.Get("/", elevated, cfg.SLAs.List)
	slas.Get("/user/:userId", cfg.SLAs.ListByUser)
	slas.Get("/dept/:deptName", cfg.SLAs.ListByDepartment)
	slas.Get("/:id", cfg.SLAs.Get)
	slas.Put("/:id/submit", cfg.SLAs.Submit)
	slas.Post("/:id/review", cfg.SLAs.Review)

	progress := protected.Group("/progress")
	progress.Get("/", elevated, cfg.Progress.ListAll)
	progress.Post("/:slaId", cfg.Progress.Record)
	progress.Get("/:slaId/schedule", cfg.Progress.Schedule)
	progress.Get("/:slaId", cfg.Progress.List)

	comments := protected.Group("/comments")
	comments.Post("/:slaId", cfg.Comments.Create)
	comments.Get("/:slaId", cfg.Comments.List)

	reports := protected.Group("/reports")
	reports.Get("/departments", cfg.Reports.DepartmentSummary)
	reports.Get("/compliance", cfg.Reports.Compliance)
}
