package retailersController

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
	retailers services.RetailerStore
}

func New(users services.UserStore, retailers services.RetailerStore) *Controller {
	return &Controller{users: users, retailers: retailers}
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
	retailer, err := h.retailers.FindByUserID(ctx, userID)
	if err != nil {
		return responses.Fail(c, err)
	}

	return responses.OK(c, "profile retrieved successfully", fiber.Map{
		"user":     user,
		"retailer": retailer,
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
		BusinessName string `json:"businessName" validate:"required"`
		Description  string `json:"description"`
		Phone        string `json:"phone" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	if err := h.retailers.UpdateProfile(ctx, userID, input.BusinessName, input.Description, input.Phone); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "profile updated successfully", nil)
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
