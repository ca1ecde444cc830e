package cartController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/responses"
	"github.com/abhinandan-jain01/nearmart/services"
)

type Controller struct {
	carts *services.CartService
}

func New(carts *services.CartService) *Controller {
	return &Controller{carts: carts}
}

func (h *Controller) Get(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	cart, err := h.carts.Get(ctx, customerID)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched cart", fiber.Map{"cart": cart})
}

func (h *Controller) AddItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid product ID")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	cart, err := h.carts.AddItem(ctx, customerID, productID, input.Quantity)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "item added to cart", fiber.Map{"cart": cart})
}

func (h *Controller) UpdateItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid product ID")
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}

	cart, err := h.carts.UpdateQuantity(ctx, customerID, productID, input.Quantity)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "cart updated", fiber.Map{"cart": cart})
}

func (h *Controller) RemoveItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid product ID")
	}

	cart, err := h.carts.RemoveItem(ctx, customerID, productID)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "item removed from cart", fiber.Map{"cart": cart})
}

func (h *Controller) Clear(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	if err := h.carts.Clear(ctx, customerID); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "cart cleared", nil)
}
