package routes

import (
	"github.com/gofiber/fiber/v2"

	analyticsController "github.com/abhinandan-jain01/nearmart/controllers/analytics"
	customersController "github.com/abhinandan-jain01/nearmart/controllers/customers"
	retailersController "github.com/abhinandan-jain01/nearmart/controllers/retailers"
	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/models"
)

func AccountRoutes(app *fiber.App, customers *customersController.Controller, retailers *retailersController.Controller, analytics *analyticsController.Controller, auth fiber.Handler) {
	customerOnly := middlewares.RequireRoles(models.RoleCustomer)
	retailerOnly := middlewares.RequireRoles(models.RoleRetailer)

	app.Get("/api/customer/profile", auth, customerOnly, customers.Profile)
	app.Put("/api/customer/profile", auth, customerOnly, customers.UpdateProfile)
	app.Get("/api/customer/favorites", auth, customerOnly, customers.Favorites)
	app.Post("/api/customer/deactivate", auth, customerOnly, customers.Deactivate)

	app.Get("/api/retailer/profile", auth, retailerOnly, retailers.Profile)
	app.Put("/api/retailer/profile", auth, retailerOnly, retailers.UpdateProfile)
	app.Post("/api/retailer/deactivate", auth, retailerOnly, retailers.Deactivate)
	app.Get("/api/retailer/dashboard", auth, retailerOnly, analytics.Dashboard)

	adminOnly := middlewares.RequireRoles(models.RoleAdmin)
	app.Get("/api/admin/overview", auth, adminOnly, analytics.Overview)
}
