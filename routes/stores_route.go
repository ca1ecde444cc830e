package routes

import (
	"github.com/gofiber/fiber/v2"

	storesController "github.com/abhinandan-jain01/nearmart/controllers/stores"
	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/models"
)

func StoreRoutes(app *fiber.App, h *storesController.Controller, auth fiber.Handler) {
	app.Get("/api/stores/nearby", h.Nearby)
	app.Get("/api/stores/:retailerId/reviews", h.Reviews)

	customerOnly := middlewares.RequireRoles(models.RoleCustomer)
	app.Post("/api/stores/:retailerId/reviews", auth, customerOnly, h.AddReview)
	app.Post("/api/stores/:retailerId/favorite", auth, customerOnly, h.FavoriteStore)
	app.Delete("/api/stores/:retailerId/favorite", auth, customerOnly, h.UnfavoriteStore)

	// Customers store delivery addresses through the same location handlers.
	app.Post("/api/customer/locations", auth, customerOnly, h.AddLocation)
	app.Get("/api/customer/locations", auth, customerOnly, h.MyLocations)
	app.Put("/api/customer/locations/:locationId", auth, customerOnly, h.UpdateLocation)
	app.Delete("/api/customer/locations/:locationId", auth, customerOnly, h.DeleteLocation)

	retailerOnly := middlewares.RequireRoles(models.RoleRetailer)
	app.Post("/api/retailer/locations", auth, retailerOnly, h.AddLocation)
	app.Get("/api/retailer/locations", auth, retailerOnly, h.MyLocations)
	app.Put("/api/retailer/locations/:locationId", auth, retailerOnly, h.UpdateLocation)
	app.Put("/api/retailer/locations/:locationId/hours", auth, retailerOnly, h.UpdateHours)
	app.Delete("/api/retailer/locations/:locationId", auth, retailerOnly, h.DeleteLocation)
}
