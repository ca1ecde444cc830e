package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketOpen:       {TicketInProgress, TicketClosed},
	TicketInProgress: {TicketResolved, TicketClosed},
	TicketResolved:   {TicketClosed},
	TicketClosed:     {},
}

func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const (
	SenderCustomer = "customer"
	SenderRetailer = "retailer"
	SenderSupport  = "support"
)

type TicketMessage struct {
	SenderID    primitive.ObjectID `bson:"senderId" json:"senderId"`
	SenderType  string             `bson:"senderType" json:"senderType"`
	Message     string             `bson:"message" json:"message" validate:"required"`
	Attachments []string           `bson:"attachments,omitempty" json:"attachments,omitempty"`
	SentAt      time.Time          `bson:"sentAt" json:"sentAt"`
}

type Satisfaction struct {
	Rating   int    `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Feedback string `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

type SupportTicket struct {
	Id           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	CustomerID   primitive.ObjectID  `bson:"customerId" json:"customerId"`
	RetailerID   *primitive.ObjectID `bson:"retailerId,omitempty" json:"retailerId,omitempty"`
	OrderID      *primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Subject      string              `bson:"subject" json:"subject" validate:"required"`
	Category     string              `bson:"category" json:"category" validate:"required,oneof=order payment delivery product account other"`
	Priority     string              `bson:"priority" json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status       TicketStatus        `bson:"status" json:"status"`
	AssignedTo   *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Messages     []TicketMessage     `bson:"messages" json:"messages"`
	Resolution   string              `bson:"resolution,omitempty" json:"resolution,omitempty"`
	ResolvedAt   *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	ClosedAt     *time.Time          `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
	Satisfaction *Satisfaction       `bson:"customerSatisfaction,omitempty" json:"customerSatisfaction,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CanView reports whether the given actor may read or post to the ticket.
func (t *SupportTicket) CanView(userID primitive.ObjectID, role string) bool {
	if role == RoleAdmin {
		return true
	}
	if t.CustomerID == userID {
		return true
	}
	if t.RetailerID != nil && *t.RetailerID == userID {
		return true
	}
	return false
}
