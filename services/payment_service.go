package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
)

// Gateway abstracts the payment provider so the service can be exercised
// without network calls.
type Gateway interface {
	CreateOrder(amountPaise int64, currency, receipt string, notes map[string]interface{}) (gatewayOrderID string, err error)
	Refund(paymentID string, amountPaise int64) error
}

type PaymentService struct {
	orders        *OrderService
	orderStore    OrderStore
	gateway       Gateway
	keySecret     string
	webhookSecret string
	log           zerolog.Logger
}

func NewPaymentService(orders *OrderService, orderStore OrderStore, gateway Gateway, keySecret, webhookSecret string, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		orders:        orders,
		orderStore:    orderStore,
		gateway:       gateway,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// CreateGatewayOrder registers the order with Razorpay and records the
// gateway ID on our side. Razorpay takes the amount in paise.
func (s *PaymentService) CreateGatewayOrder(ctx context.Context, orderID, customerID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orderStore.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, apperrors.Forbidden("not authorized to pay for this order")
	}
	if order.Status == models.OrderCancelled {
		return nil, apperrors.Conflict("cannot pay for a cancelled order")
	}
	if order.RazorpayOrderID != "" {
		return order, nil
	}

	gatewayOrderID, err := s.gateway.CreateOrder(
		toPaise(order.TotalAmount),
		"INR",
		"receipt_"+order.OrderNumber,
		map[string]interface{}{"orderId": order.ID.Hex()},
	)
	if err != nil {
		return nil, apperrors.Internal("failed to create gateway order", err)
	}

	order.RazorpayOrderID = gatewayOrderID
	order.PaymentStatus = models.PaymentProcessing
	if err := s.orderStore.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// VerifyPayment checks the signature Razorpay hands back to the client
// (HMAC-SHA256 over "orderId|paymentId") and marks the payment completed.
func (s *PaymentService) VerifyPayment(ctx context.Context, customerID primitive.ObjectID, razorpayOrderID, paymentID, signature string) (*models.Order, error) {
	if !s.validSignature(razorpayOrderID+"|"+paymentID, signature, s.keySecret) {
		return nil, apperrors.Unauthorized("payment signature verification failed")
	}

	order, err := s.orderStore.FindByRazorpayOrderID(ctx, razorpayOrderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, apperrors.Forbidden("not authorized to verify this payment")
	}

	return s.orders.UpdatePaymentStatus(ctx, order.ID, models.PaymentCompleted, paymentID)
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook verifies the X-Razorpay-Signature HMAC over the raw body
// before trusting the event, then applies payment.captured / payment.failed.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.validSignature(string(body), signature, s.webhookSecret) {
		return apperrors.Unauthorized("webhook signature verification failed")
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return apperrors.Wrap(apperrors.KindInvalid, "malformed webhook payload", err)
	}

	// Events outside the payment lifecycle carry no payment entity, so the
	// order lookup only runs for the events that act on one. Unhandled events
	// must still return nil; Razorpay retries anything that is not a 2xx.
	switch event.Event {
	case "payment.captured":
		order, err := s.orderStore.FindByRazorpayOrderID(ctx, event.Payload.Payment.Entity.OrderID)
		if err != nil {
			return err
		}
		_, err = s.orders.UpdatePaymentStatus(ctx, order.ID, models.PaymentCompleted, event.Payload.Payment.Entity.ID)
		return err
	case "payment.failed":
		order, err := s.orderStore.FindByRazorpayOrderID(ctx, event.Payload.Payment.Entity.OrderID)
		if err != nil {
			return err
		}
		_, err = s.orders.UpdatePaymentStatus(ctx, order.ID, models.PaymentFailed, event.Payload.Payment.Entity.ID)
		return err
	default:
		s.log.Debug().Str("event", event.Event).Msg("ignoring unhandled webhook event")
		return nil
	}
}

// RefundOrder refunds a completed payment after cancellation. Gateway
// failures are logged, not surfaced; the cancellation itself already stands.
func (s *PaymentService) RefundOrder(ctx context.Context, order *models.Order) {
	if order.PaymentStatus != models.PaymentCompleted || order.PaymentID == "" {
		return
	}
	if err := s.gateway.Refund(order.PaymentID, toPaise(order.TotalAmount)); err != nil {
		s.log.Error().Err(err).Str("order", order.OrderNumber).Msg("refund failed")
		return
	}
	if _, err := s.orders.UpdatePaymentStatus(ctx, order.ID, models.PaymentRefunded, order.PaymentID); err != nil {
		s.log.Error().Err(err).Str("order", order.OrderNumber).Msg("failed to record refund")
	}
}

func (s *PaymentService) validSignature(payload, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// toPaise converts rupees to the integer paise Razorpay expects without
// binary float drift.
func toPaise(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).IntPart()
}
