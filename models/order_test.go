package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderPreparing, false},
		{OrderPending, OrderDelivered, false},
		{OrderConfirmed, OrderPreparing, true},
		{OrderConfirmed, OrderCancelled, true},
		{OrderConfirmed, OrderReady, false},
		{OrderPreparing, OrderReady, true},
		{OrderPreparing, OrderCancelled, true},
		{OrderPreparing, OrderDelivered, false},
		{OrderReady, OrderDelivered, true},
		{OrderReady, OrderCancelled, true},
		{OrderReady, OrderPreparing, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderDelivered, OrderPending, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderConfirmed, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusNoBackwardTransitions(t *testing.T) {
	forward := []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered}
	for i, later := range forward {
		for _, earlier := range forward[:i] {
			assert.False(t, later.CanTransitionTo(earlier), "%s must not return to %s", later, earlier)
		}
	}
}

func TestOrderStatusRestockable(t *testing.T) {
	assert.True(t, OrderPending.Restockable())
	assert.True(t, OrderConfirmed.Restockable())
	assert.False(t, OrderPreparing.Restockable())
	assert.False(t, OrderReady.Restockable())
	assert.False(t, OrderDelivered.Restockable())
	assert.False(t, OrderCancelled.Restockable())
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestPaymentStatusValid(t *testing.T) {
	for _, p := range []PaymentStatus{PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, PaymentStatus("paid").Valid())
	assert.False(t, PaymentStatus("").Valid())
}
