package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/admin"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/admin"
)

// SetupAdminRoutes sets up the dashboard, settings and support desk routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.MinRole(models.RoleSupportAdmin))

	adminGroup.Get("/dashboard", controllers.Dashboard)

	adminGroup.Get("/settings", controllers.ListSettings)
	adminGroup.Post("/settings", middleware.MinRole(models.RoleSystemAdmin), validators.UpsertSetting(), controllers.UpsertSetting)
	adminGroup.Delete("/settings/:key", middleware.MinRole(models.RoleSystemAdmin), controllers.DeleteSetting)

	// Support desk is open to every authenticated user; staff-only actions
	// carry their own role guard
	ticketGroup := app.Group("/tickets", middleware.JWTMiddleware)
	ticketGroup.Post("/create", validators.CreateTicket(), controllers.CreateTicket)
	ticketGroup.Get("/list", controllers.ListTickets)
	ticketGroup.Get("/:id", controllers.GetTicket)
	ticketGroup.Put("/:id", middleware.MinRole(models.RoleSupportAdmin), validators.UpdateTicket(), controllers.UpdateTicket)
	ticketGroup.Post("/:id/replies", validators.ReplyTicket(), controllers.ReplyTicket)
}
