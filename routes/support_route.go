package routes

import (
	"github.com/gofiber/fiber/v2"

	supportController "github.com/abhinandan-jain01/nearmart/controllers/support"
	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/models"
)

func SupportRoutes(app *fiber.App, h *supportController.Controller, auth fiber.Handler) {
	adminOnly := middlewares.RequireRoles(models.RoleAdmin)
	customerOnly := middlewares.RequireRoles(models.RoleCustomer)

	app.Post("/api/support/tickets", auth, customerOnly, h.Create)
	app.Get("/api/support/tickets", auth, h.List)
	app.Get("/api/support/tickets/:ticketId", auth, h.Detail)
	app.Post("/api/support/tickets/:ticketId/messages", auth, h.PostMessage)
	app.Patch("/api/support/tickets/:ticketId/status", auth, h.UpdateStatus)
	app.Post("/api/support/tickets/:ticketId/assign", auth, adminOnly, h.Assign)
	app.Post("/api/support/tickets/:ticketId/satisfaction", auth, customerOnly, h.RateSatisfaction)
}
