package customersController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/responses"
	"github.com/abhinandan-jain01/nearmart/services"
	"github.com/abhinandan-jain01/nearmart/validation"
)

type Controller struct {
	users     services.UserStore
	customers services.CustomerStore
	favorites *services.FavoriteService
}

func New(users services.UserStore, customers services.CustomerStore, favorites *services.FavoriteService) *Controller {
	return &Controller{users: users, customers: customers, favorites: favorites}
}

func (h *Controller) Profile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return responses.Fail(c, err)
	}
	customer, err := h.customers.FindByUserID(ctx, userID)
	if err != nil {
		return responses.Fail(c, err)
	}

	return responses.OK(c, "profile retrieved successfully", fiber.Map{
		"user":     user,
		"customer": customer,
	})
}

func (h *Controller) UpdateProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	var input struct {
		FirstName string `json:"firstName" validate:"required"`
		LastName  string `json:"lastName" validate:"required"`
		Phone     string `json:"phone" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	if err := h.customers.UpdateProfile(ctx, userID, input.FirstName, input.LastName, input.Phone); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "profile updated successfully", nil)
}

func (h *Controller) Favorites(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	stores, products, err := h.favorites.Favorites(ctx, userID)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched favorites", fiber.Map{
		"stores":   stores,
		"products": products,
	})
}

func (h *Controller) Deactivate(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	if err := h.users.SetActive(ctx, userID, false); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "account deactivated", nil)
}
