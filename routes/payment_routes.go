package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njeri254/tutor_marketplace/handlers"
	"github.com/njeri254/tutor_marketplace/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Gateway settlement callback, authenticated by the gateway itself.
	api.Post("/payments/webhook", handlers.HandleGatewayWebhook)

	payments := api.Group("/payments", middleware.Protected())
	payments.Post("", handlers.InitiatePayment)
	payments.Get("/me", handlers.GetMyPayments)
	payments.Post("/:paymentId/refund", handlers.RefundPayment)
}
