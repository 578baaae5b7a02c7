package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-report-service/internal/api/http/handlers"
	"github.com/spec-kit/sales-report-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reports        *handlers.ReportsHandler
	Visits         *handlers.VisitsHandler
	Comments       *handlers.CommentsHandler
	Customers      *handlers.CustomersHandler
	Staff          *handlers.StaffHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes under /api/v1.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")
	api.Post("/auth/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/auth/logout", cfg.Auth.Logout)
	protected.Get("/auth/me", cfg.Auth.Me)

	reports := protected.Group("/reports")
	reports.Post("", cfg.Reports.CreateReport)
	reports.Get("", cfg.Reports.ListReports)
	reports.Get("/:reportID", cfg.Reports.GetReport)
	reports.Put("/:reportID", cfg.Reports.UpdateReport)
	reports.Patch("/:reportID/status", cfg.Reports.UpdateStatus)
	reports.Delete("/:reportID", cfg.Reports.DeleteReport)

	visits := reports.Group("/:reportID/visits")
	visits.Get("", cfg.Visits.ListVisits)
	visits.Post("", cfg.Visits.CreateVisit)
	visits.Get("/:visitID", cfg.Visits.GetVisit)
	visits.Put("/:visitID", cfg.Visits.UpdateVisit)
	visits.Delete("/:visitID", cfg.Visits.DeleteVisit)

	comments := reports.Group("/:reportID/comments")
	comments.Get("", cfg.Comments.ListComments)
	comments.Post("", cfg.Comments.CreateComment)
	comments.Get("/:commentID", cfg.Comments.GetComment)
	comments.Put("/:commentID", cfg.Comments.UpdateComment)
	comments.Delete("/:commentID", cfg.Comments.DeleteComment)

	customers := protected.Group("/customers")
	customers.Get("", cfg.Customers.ListCustomers)
	customers.Get("/:customerID", cfg.Customers.GetCustomer)
	customers.Post("", auth.RequireAdmin(), cfg.Customers.CreateCustomer)
	customers.Put("/:customerID", auth.RequireAdmin(), cfg.Customers.UpdateCustomer)
	customers.Delete("/:customerID", auth.RequireAdmin(), cfg.Customers.DeleteCustomer)

	staff := protected.Group("/sales-staff", auth.RequireAdmin())
	staff.Get("", cfg.Staff.ListStaff)
	staff.Post("", cfg.Staff.CreateStaff)
	staff.Get("/:salesID", cfg.Staff.GetStaff)
	staff.Put("/:salesID", cfg.Staff.UpdateStaff)
	staff.Delete("/:salesID", cfg.Staff.DeleteStaff)

	protected.Get("/dashboard/summary", cfg.Dashboard.Summary)
	protected.Get("/statistics", cfg.Dashboard.Statistics)
}
