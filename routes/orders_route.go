package routes

import (
	"github.com/gofiber/fiber/v2"

	ordersController "github.com/abhinandan-jain01/nearmart/controllers/orders"
	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/models"
)

func OrderRoutes(app *fiber.App, h *ordersController.Controller, auth fiber.Handler) {
	customerOnly := middlewares.RequireRoles(models.RoleCustomer)
	retailerOnly := middlewares.RequireRoles(models.RoleRetailer)

	app.Post("/api/orders", auth, customerOnly, h.Place)
	app.Get("/api/orders", auth, customerOnly, h.CustomerOrders)
	app.Post("/api/orders/:orderId/cancel", auth, customerOnly, h.Cancel)

	app.Get("/api/retailer/orders", auth, retailerOnly, h.RetailerOrders)
	app.Patch("/api/orders/:orderId/status", auth, middlewares.RequireRoles(models.RoleRetailer, models.RoleAdmin), h.UpdateStatus)

	app.Get("/api/orders/:orderId", auth, h.Detail)
}
