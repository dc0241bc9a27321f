package paymentRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/payment"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/payment"
)

// SetupPaymentRoutes sets up cart, checkout and transaction routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments", middleware.JWTMiddleware)

	paymentGroup.Post("/cart", validators.Cart(), controllers.CreateCart)
	paymentGroup.Get("/transactions", controllers.ListTransactions)
	paymentGroup.Get("/transactions/:id", controllers.GetTransaction)
	paymentGroup.Post("/checkout", validators.Checkout(), controllers.Checkout)
	paymentGroup.Post("/transactions/:id/cancel", controllers.CancelTransaction)
	paymentGroup.Post("/transactions/:id/refund", middleware.MinRole(models.RoleSupportAdmin), controllers.Refund)
	paymentGroup.Post("/webhook", middleware.MinRole(models.RoleSupportAdmin), validators.Webhook(), controllers.GatewayWebhook)
}
