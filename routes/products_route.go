package routes

import (
	"github.com/gofiber/fiber/v2"

	productsController "github.com/abhinandan-jain01/nearmart/controllers/products"
	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/models"
)

func ProductRoutes(app *fiber.App, h *productsController.Controller, auth fiber.Handler) {
	app.Get("/api/products", h.Search)
	app.Get("/api/products/:productId", h.Detail)

	customerOnly := middlewares.RequireRoles(models.RoleCustomer)
	app.Post("/api/products/:productId/favorite", auth, customerOnly, h.Favorite)
	app.Delete("/api/products/:productId/favorite", auth, customerOnly, h.Unfavorite)

	retailerOnly := middlewares.RequireRoles(models.RoleRetailer)
	app.Post("/api/retailer/products", auth, retailerOnly, h.Create)
	app.Put("/api/retailer/products/:productId", auth, retailerOnly, h.Update)
	app.Patch("/api/retailer/products/:productId/stock", auth, retailerOnly, h.AdjustStock)
	app.Patch("/api/retailer/products/:productId/active", auth, retailerOnly, h.SetActive)
	app.Get("/api/retailer/products/low-stock", auth, retailerOnly, h.LowStock)
}
