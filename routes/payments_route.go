package routes

import (
	"github.com/gofiber/fiber/v2"

	paymentsController "github.com/abhinandan-jain01/nearmart/controllers/payments"
	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/models"
)

func PaymentRoutes(app *fiber.App, h *paymentsController.Controller, auth fiber.Handler) {
	customerOnly := middlewares.RequireRoles(models.RoleCustomer)

	app.Post("/api/payments/order", auth, customerOnly, h.CreateGatewayOrder)
	app.Post("/api/payments/verify", auth, customerOnly, h.VerifyPayment)

	// Gateway callback, authenticated by signature instead of a bearer token.
	app.Post("/api/payments/webhook", h.Webhook)
}
