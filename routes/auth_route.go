package routes

import (
	"github.com/gofiber/fiber/v2"

	authController "github.com/abhinandan-jain01/nearmart/controllers/auth"
)

func AuthRoutes(app *fiber.App, h *authController.Controller) {
	app.Post("/api/auth/register/customer", h.RegisterCustomer)
	app.Post("/api/auth/register/retailer", h.RegisterRetailer)
	app.Post("/api/auth/login", h.Login)
}
