package paymentsController

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
	payments *services.PaymentService
}

func New(payments *services.PaymentService) *Controller {
	return &Controller{payments: payments}
}

func (h *Controller) CreateGatewayOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	var input struct {
		OrderID string `json:"orderId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	orderID, err := primitive.ObjectIDFromHex(input.OrderID)
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid order ID")
	}

	order, err := h.payments.CreateGatewayOrder(ctx, orderID, customerID)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "payment order created", fiber.Map{
		"razorpayOrderId": order.RazorpayOrderID,
		"amount":          order.TotalAmount,
		"currency":        "INR",
	})
}

func (h *Controller) VerifyPayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	var input struct {
		RazorpayOrderID string `json:"razorpayOrderId"`
		PaymentID       string `json:"paymentId"`
		Signature       string `json:"signature"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}

	order, err := h.payments.VerifyPayment(ctx, customerID, input.RazorpayOrderID, input.PaymentID, input.Signature)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "payment verified successfully", fiber.Map{"order": order})
}

// Webhook is unauthenticated; trust comes from the HMAC signature header.
func (h *Controller) Webhook(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	signature := c.Get("X-Razorpay-Signature")
	if err := h.payments.HandleWebhook(ctx, c.Body(), signature); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "webhook processed", nil)
}
