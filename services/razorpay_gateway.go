package services

import (
	"fmt"

	"github.com/razorpay/razorpay-go"
)

// RazorpayGateway adapts the razorpay-go client to the Gateway interface.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *RazorpayGateway) CreateOrder(amountPaise int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}
	id, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("gateway order response missing id")
	}
	return id, nil
}

func (g *RazorpayGateway) Refund(paymentID string, amountPaise int64) error {
	data := map[string]interface{}{
		"notes": map[string]interface{}{"refund_reason": "order cancellation"},
	}
	_, err := g.client.Payment.Refund(paymentID, int(amountPaise), data, nil)
	return err
}
