package supportController

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
	tickets *services.TicketService
}

func New(tickets *services.TicketService) *Controller {
	return &Controller{tickets: tickets}
}

func (h *Controller) Create(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	var input services.CreateTicketInput
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	ticket, err := h.tickets.Create(ctx, customerID, input)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.Created(c, "ticket created successfully", fiber.Map{"ticket": ticket})
}

func (h *Controller) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	actorID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	status := c.Query("status")

	var (
		tickets []models.SupportTicket
		total   int64
	)
	switch middlewares.ActorRole(c) {
	case models.RoleAdmin:
		tickets, total, err = h.tickets.ListAll(ctx, status, page, limit)
	case models.RoleRetailer:
		tickets, total, err = h.tickets.ListForRetailer(ctx, actorID, status, page, limit)
	default:
		tickets, total, err = h.tickets.ListForCustomer(ctx, actorID, status, page, limit)
	}
	if err != nil {
		return responses.Fail(c, err)
	}

	return responses.OK(c, "fetched tickets", fiber.Map{
		"tickets":     tickets,
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
	ticketID, err := primitive.ObjectIDFromHex(c.Params("ticketId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid ticket ID")
	}

	ticket, err := h.tickets.Get(ctx, ticketID, actorID, middlewares.ActorRole(c))
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched ticket", fiber.Map{"ticket": ticket})
}

func (h *Controller) PostMessage(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	actorID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	ticketID, err := primitive.ObjectIDFromHex(c.Params("ticketId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid ticket ID")
	}

	var input struct {
		Message     string   `json:"message" validate:"required"`
		Attachments []string `json:"attachments"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	ticket, err := h.tickets.PostMessage(ctx, ticketID, actorID, middlewares.ActorRole(c), input.Message, input.Attachments)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "message posted", fiber.Map{"ticket": ticket})
}

func (h *Controller) UpdateStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	actorID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	ticketID, err := primitive.ObjectIDFromHex(c.Params("ticketId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid ticket ID")
	}

	var input struct {
		Status     string `json:"status" validate:"required"`
		Resolution string `json:"resolution"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}

	ticket, err := h.tickets.UpdateStatus(ctx, ticketID, actorID, middlewares.ActorRole(c), models.TicketStatus(input.Status), input.Resolution)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "ticket status updated", fiber.Map{"ticket": ticket})
}

func (h *Controller) Assign(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	ticketID, err := primitive.ObjectIDFromHex(c.Params("ticketId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid ticket ID")
	}

	var input struct {
		StaffID string `json:"staffId" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	staffID, err := primitive.ObjectIDFromHex(input.StaffID)
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid staff ID")
	}

	ticket, err := h.tickets.Assign(ctx, ticketID, staffID, middlewares.ActorRole(c))
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "ticket assigned", fiber.Map{"ticket": ticket})
}

func (h *Controller) RateSatisfaction(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	ticketID, err := primitive.ObjectIDFromHex(c.Params("ticketId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid ticket ID")
	}

	var input struct {
		Rating   int    `json:"rating" validate:"required,min=1,max=5"`
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}

	ticket, err := h.tickets.RateSatisfaction(ctx, ticketID, customerID, input.Rating, input.Feedback)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "satisfaction recorded", fiber.Map{"ticket": ticket})
}
