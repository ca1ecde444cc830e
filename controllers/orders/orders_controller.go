package ordersController

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/responses"
	"github.com/abhinandan-jain01/nearmart/services"
	"github.com/abhinandan-jain01/nearmart/validation"
)

type Controller struct {
	orders   *services.OrderService
	payments *services.PaymentService
}

func New(orders *services.OrderService, payments *services.PaymentService) *Controller {
	return &Controller{orders: orders, payments: payments}
}

func (h *Controller) Place(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	var input services.PlaceOrderInput
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	order, err := h.orders.PlaceOrder(ctx, customerID, input)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.Created(c, "order created successfully", fiber.Map{"order": order})
}

func (h *Controller) CustomerOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	orders, total, err := h.orders.ListForCustomer(ctx, customerID, c.Query("status"), page, limit)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched orders", fiber.Map{
		"orders":      orders,
		"total":       total,
		"currentPage": page,
	})
}

func (h *Controller) RetailerOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	retailerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	orders, total, err := h.orders.ListForRetailer(ctx, retailerID, c.Query("status"), page, limit)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched orders", fiber.Map{
		"orders":      orders,
		"total":       total,
		"currentPage": page,
	})
}

func (h *Controller) Detail(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	actorID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	orderID, err := primitive.ObjectIDFromHex(c.Params("orderId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid order ID")
	}

	order, err := h.orders.Get(ctx, orderID, actorID, middlewares.ActorRole(c))
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched order", fiber.Map{"order": order})
}

// UpdateStatus is the retailer/admin path through the fulfillment machine.
func (h *Controller) UpdateStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	actorID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	orderID, err := primitive.ObjectIDFromHex(c.Params("orderId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid order ID")
	}

	var input struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}

	order, err := h.orders.UpdateStatus(ctx, orderID, actorID, middlewares.ActorRole(c), models.OrderStatus(input.Status))
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "order status updated", fiber.Map{"order": order})
}

// Cancel is the customer-initiated cancellation; a completed payment is
// refunded best effort after the cancel stands.
func (h *Controller) Cancel(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	orderID, err := primitive.ObjectIDFromHex(c.Params("orderId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid order ID")
	}

	order, err := h.orders.Cancel(ctx, orderID, customerID)
	if err != nil {
		return responses.Fail(c, err)
	}
	if h.payments != nil {
		h.payments.RefundOrder(ctx, order)
	}
	return responses.OK(c, "order cancelled", fiber.Map{"order": order})
}
