package authController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abhinandan-jain01/nearmart/responses"
	"github.com/abhinandan-jain01/nearmart/services"
	"github.com/abhinandan-jain01/nearmart/validation"
)

type Controller struct {
	auth *services.AuthService
}

func New(auth *services.AuthService) *Controller {
	return &Controller{auth: auth}
}

func (h *Controller) RegisterCustomer(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var input services.RegisterCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	user, customer, tokenString, err := h.auth.RegisterCustomer(ctx, input)
	if err != nil {
		return responses.Fail(c, err)
	}

	return responses.Created(c, "customer registered successfully", fiber.Map{
		"user":     user,
		"customer": customer,
		"token":    tokenString,
	})
}

func (h *Controller) RegisterRetailer(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var input services.RegisterRetailerInput
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	user, retailer, tokenString, err := h.auth.RegisterRetailer(ctx, input)
	if err != nil {
		return responses.Fail(c, err)
	}

	return responses.Created(c, "retailer registered successfully", fiber.Map{
		"user":     user,
		"retailer": retailer,
		"token":    tokenString,
	})
}

func (h *Controller) Login(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	user, tokenString, err := h.auth.Login(ctx, input.Email, input.Password)
	if err != nil {
		return responses.Fail(c, err)
	}

	return responses.OK(c, "login successful", fiber.Map{
		"user":  user,
		"token": tokenString,
	})
}
