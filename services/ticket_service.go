package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/repository"
)

type CreateTicketInput struct {
	Subject    string `json:"subject" validate:"required"`
	Category   string `json:"category" validate:"required,oneof=order payment delivery product account other"`
	Priority   string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Message    string `json:"message" validate:"required"`
	OrderID    string `json:"orderId"`
	RetailerID string `json:"retailerId"`
}

type TicketService struct {
	tickets  TicketStore
	notifier Notifier
	now      func() time.Time
}

func NewTicketService(tickets TicketStore, notifier Notifier) *TicketService {
	return &TicketService{tickets: tickets, notifier: notifier, now: time.Now}
}

// Create opens a ticket with the customer's first message embedded.
func (s *TicketService) Create(ctx context.Context, customerID primitive.ObjectID, input CreateTicketInput) (*models.SupportTicket, error) {
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	ticket := &models.SupportTicket{
		CustomerID: customerID,
		Subject:    input.Subject,
		Category:   input.Category,
		Priority:   priority,
		Status:     models.TicketOpen,
		Messages: []models.TicketMessage{{
			SenderID:   customerID,
			SenderType: models.SenderCustomer,
			Message:    input.Message,
			SentAt:     s.now(),
		}},
	}

	if input.OrderID != "" {
		orderID, err := primitive.ObjectIDFromHex(input.OrderID)
		if err != nil {
			return nil, apperrors.Invalid("invalid order ID")
		}
		ticket.OrderID = &orderID
	}
	if input.RetailerID != "" {
		retailerID, err := primitive.ObjectIDFromHex(input.RetailerID)
		if err != nil {
			return nil, apperrors.Invalid("invalid retailer ID")
		}
		ticket.RetailerID = &retailerID
	}

	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, err
	}
	if s.notifier != nil && ticket.RetailerID != nil {
		s.notifier.Push(ticket.RetailerID.Hex(), "ticket:new", ticket)
	}
	return ticket, nil
}

// Get enforces the read rule: only the ticket's customer, its retailer, or an
// admin.
func (s *TicketService) Get(ctx context.Context, ticketID, actorID primitive.ObjectID, role string) (*models.SupportTicket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticket.CanView(actorID, role) {
		return nil, apperrors.Forbidden("not authorized to view this ticket")
	}
	return ticket, nil
}

// PostMessage appends to the thread under the same authorization rule as Get.
// Closed tickets do not accept new messages.
func (s *TicketService) PostMessage(ctx context.Context, ticketID, actorID primitive.ObjectID, role, message string, attachments []string) (*models.SupportTicket, error) {
	ticket, err := s.Get(ctx, ticketID, actorID, role)
	if err != nil {
		return nil, err
	}
	if ticket.Status == models.TicketClosed {
		return nil, apperrors.Conflict("ticket is closed")
	}

	senderType := models.SenderCustomer
	switch {
	case role == models.RoleAdmin:
		senderType = models.SenderSupport
	case ticket.RetailerID != nil && *ticket.RetailerID == actorID:
		senderType = models.SenderRetailer
	}

	ticket.Messages = append(ticket.Messages, models.TicketMessage{
		SenderID:    actorID,
		SenderType:  senderType,
		Message:     message,
		Attachments: attachments,
		SentAt:      s.now(),
	})
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		// Tell the other side of the conversation.
		if actorID != ticket.CustomerID {
			s.notifier.Push(ticket.CustomerID.Hex(), "ticket:message", ticket)
		} else if ticket.RetailerID != nil {
			s.notifier.Push(ticket.RetailerID.Hex(), "ticket:message", ticket)
		}
	}
	return ticket, nil
}

// UpdateStatus moves the ticket lifecycle. Only an admin or the assigned
// support staff may change status.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID, actorID primitive.ObjectID, role string, next models.TicketStatus, resolution string) (*models.SupportTicket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && (ticket.AssignedTo == nil || *ticket.AssignedTo != actorID) {
		return nil, apperrors.Forbidden("not authorized to change ticket status")
	}
	if !ticket.Status.CanTransitionTo(next) {
		return nil, apperrors.Conflict("cannot transition ticket from %s to %s", ticket.Status, next)
	}

	now := s.now()
	ticket.Status = next
	switch next {
	case models.TicketResolved:
		ticket.Resolution = resolution
		ticket.ResolvedAt = &now
	case models.TicketClosed:
		ticket.ClosedAt = &now
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.Push(ticket.CustomerID.Hex(), "ticket:status", ticket)
	}
	return ticket, nil
}

// Assign hands the ticket to a support staff user (admin only).
func (s *TicketService) Assign(ctx context.Context, ticketID, staffID primitive.ObjectID, role string) (*models.SupportTicket, error) {
	if role != models.RoleAdmin {
		return nil, apperrors.Forbidden("only admins may assign tickets")
	}
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.AssignedTo = &staffID
	if ticket.Status == models.TicketOpen {
		ticket.Status = models.TicketInProgress
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// RateSatisfaction records the customer's follow-up rating, allowed only on
// resolved tickets and only by the ticket's customer.
func (s *TicketService) RateSatisfaction(ctx context.Context, ticketID, customerID primitive.ObjectID, rating int, feedback string) (*models.SupportTicket, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.Invalid("rating must be between 1 and 5")
	}
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.CustomerID != customerID {
		return nil, apperrors.Forbidden("only the ticket's customer may rate it")
	}
	if ticket.Status != models.TicketResolved {
		return nil, apperrors.Conflict("satisfaction can only be submitted on resolved tickets")
	}

	ticket.Satisfaction = &models.Satisfaction{Rating: rating, Feedback: feedback}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) ListForCustomer(ctx context.Context, customerID primitive.ObjectID, status string, page, limit int64) ([]models.SupportTicket, int64, error) {
	return s.tickets.List(ctx, repository.TicketFilter{CustomerID: &customerID, Status: status, Page: page, Limit: limit})
}

func (s *TicketService) ListForRetailer(ctx context.Context, retailerID primitive.ObjectID, status string, page, limit int64) ([]models.SupportTicket, int64, error) {
	return s.tickets.List(ctx, repository.TicketFilter{RetailerID: &retailerID, Status: status, Page: page, Limit: limit})
}

func (s *TicketService) ListAll(ctx context.Context, status string, page, limit int64) ([]models.SupportTicket, int64, error) {
	return s.tickets.List(ctx, repository.TicketFilter{Status: status, Page: page, Limit: limit})
}
