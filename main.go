package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	analyticsController "github.com/abhinandan-jain01/nearmart/controllers/analytics"
	authController "github.com/abhinandan-jain01/nearmart/controllers/auth"
	cartController "github.com/abhinandan-jain01/nearmart/controllers/cart"
	customersController "github.com/abhinandan-jain01/nearmart/controllers/customers"
	ordersController "github.com/abhinandan-jain01/nearmart/controllers/orders"
	paymentsController "github.com/abhinandan-jain01/nearmart/controllers/payments"
	productsController "github.com/abhinandan-jain01/nearmart/controllers/products"
	retailersController "github.com/abhinandan-jain01/nearmart/controllers/retailers"
	storesController "github.com/abhinandan-jain01/nearmart/controllers/stores"
	supportController "github.com/abhinandan-jain01/nearmart/controllers/support"

	"github.com/abhinandan-jain01/nearmart/configs"
	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/notifications"
	"github.com/abhinandan-jain01/nearmart/repository"
	"github.com/abhinandan-jain01/nearmart/routes"
	"github.com/abhinandan-jain01/nearmart/services"
	"github.com/abhinandan-jain01/nearmart/token"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "nearmart").Logger()

	client, err := configs.ConnectDB()
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := configs.EnsureIndexes(ctx, client); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	users := repository.NewUsers(configs.GetCollection(client, "users"))
	customers := repository.NewCustomers(configs.GetCollection(client, "customers"))
	retailers := repository.NewRetailers(configs.GetCollection(client, "retailers"))
	products := repository.NewProducts(configs.GetCollection(client, "products"))
	orders := repository.NewOrders(configs.GetCollection(client, "orders"))
	carts := repository.NewCarts(configs.GetCollection(client, "carts"))
	tickets := repository.NewTickets(configs.GetCollection(client, "tickets"))
	locations := repository.NewLocations(configs.GetCollection(client, "locations"))
	reviews := repository.NewReviews(configs.GetCollection(client, "reviews"))

	tokens := token.NewMaker(configs.EnvJWTSecret(), 24*time.Hour)
	hub := notifications.NewHub(log)
	mailer := services.NewSMTPMailer(configs.EnvSMTPHost(), configs.EnvSMTPPort(), configs.EnvSMTPUser(), configs.EnvSMTPPassword())

	geocoder, err := services.NewMapsGeocoder(configs.EnvGoogleMapsAPIKey())
	if err != nil {
		log.Fatal().Err(err).Msg("maps client init failed")
	}

	gateway := services.NewRazorpayGateway(configs.EnvRazorpayKeyId(), configs.EnvRazorpayKeySecret())

	authService := services.NewAuthService(users, customers, retailers, tokens)
	productService := services.NewProductService(products, hub, log)
	cartService := services.NewCartService(carts, products)
	orderService := services.NewOrderService(orders, products, carts, customers, retailers, users, hub, mailer, log)
	paymentService := services.NewPaymentService(orderService, orders, gateway, configs.EnvRazorpayKeySecret(), configs.EnvRazorpayWebhookSecret(), log)
	locationService := services.NewLocationService(locations, retailers, geocoder, log)
	ticketService := services.NewTicketService(tickets, hub)
	analyticsService := services.NewAnalyticsService(orders, products, retailers, users)
	reviewService := services.NewReviewService(reviews, retailers)
	favoriteService := services.NewFavoriteService(customers, retailers, products)

	app := fiber.New(fiber.Config{
		AppName: "nearmart",
	})
	app.Use(recover.New())
	app.Use(middlewares.RequestLogger(log))

	auth := middlewares.Auth(tokens)
	routes.AuthRoutes(app, authController.New(authService))
	routes.ProductRoutes(app, productsController.New(productService, favoriteService), auth)
	routes.CartRoutes(app, cartController.New(cartService), auth)
	routes.OrderRoutes(app, ordersController.New(orderService, paymentService), auth)
	routes.PaymentRoutes(app, paymentsController.New(paymentService), auth)
	routes.StoreRoutes(app, storesController.New(locationService, reviewService, favoriteService), auth)
	routes.SupportRoutes(app, supportController.New(ticketService), auth)
	routes.AccountRoutes(app, customersController.New(users, customers, favoriteService), retailersController.New(users, retailers), analyticsController.New(analyticsService), auth)
	routes.NotificationRoutes(app, hub, tokens)

	go func() {
		if err := app.Listen(":" + configs.EnvServerPort()); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", configs.EnvServerPort()).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
