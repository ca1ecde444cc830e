package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTicketStatusTransitions(t *testing.T) {
	assert.True(t, TicketOpen.CanTransitionTo(TicketInProgress))
	assert.True(t, TicketOpen.CanTransitionTo(TicketClosed))
	assert.False(t, TicketOpen.CanTransitionTo(TicketResolved))

	assert.True(t, TicketInProgress.CanTransitionTo(TicketResolved))
	assert.True(t, TicketInProgress.CanTransitionTo(TicketClosed))
	assert.False(t, TicketInProgress.CanTransitionTo(TicketOpen))

	assert.True(t, TicketResolved.CanTransitionTo(TicketClosed))
	assert.False(t, TicketResolved.CanTransitionTo(TicketInProgress))

	assert.False(t, TicketClosed.CanTransitionTo(TicketOpen))
	assert.False(t, TicketClosed.CanTransitionTo(TicketResolved))
}

func TestSupportTicketCanView(t *testing.T) {
	customer := primitive.NewObjectID()
	retailer := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	ticket := &SupportTicket{CustomerID: customer, RetailerID: &retailer}

	assert.True(t, ticket.CanView(customer, RoleCustomer))
	assert.True(t, ticket.CanView(retailer, RoleRetailer))
	assert.True(t, ticket.CanView(stranger, RoleAdmin))
	assert.False(t, ticket.CanView(stranger, RoleCustomer))
	assert.False(t, ticket.CanView(stranger, RoleRetailer))

	noRetailer := &SupportTicket{CustomerID: customer}
	assert.False(t, noRetailer.CanView(retailer, RoleRetailer))
}
