package routes

import (
	"github.com/gofiber/fiber/v2"

	cartController "github.com/abhinandan-jain01/nearmart/controllers/cart"
	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/models"
)

func CartRoutes(app *fiber.App, h *cartController.Controller, auth fiber.Handler) {
	customerOnly := middlewares.RequireRoles(models.RoleCustomer)

	app.Get("/api/cart", auth, customerOnly, h.Get)
	app.Post("/api/cart/items", auth, customerOnly, h.AddItem)
	app.Put("/api/cart/items/:productId", auth, customerOnly, h.UpdateItem)
	app.Delete("/api/cart/items/:productId", auth, customerOnly, h.RemoveItem)
	app.Delete("/api/cart", auth, customerOnly, h.Clear)
}
