package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/repository"
)

type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type PlaceOrderInput struct {
	Items           []OrderItemInput `json:"items"`
	FromCart        bool             `json:"fromCart"`
	ShippingAddress models.Address   `json:"shippingAddress" validate:"required"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required,oneof=razorpay cod"`
}

type OrderService struct {
	orders    OrderStore
	products  ProductStore
	carts     CartStore
	customers CustomerStore
	retailers RetailerStore
	users     UserStore
	notifier  Notifier
	mailer    Mailer
	log       zerolog.Logger
}

func NewOrderService(
	orders OrderStore,
	products ProductStore,
	carts CartStore,
	customers CustomerStore,
	retailers RetailerStore,
	users UserStore,
	notifier Notifier,
	mailer Mailer,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		carts:     carts,
		customers: customers,
		retailers: retailers,
		users:     users,
		notifier:  notifier,
		mailer:    mailer,
		log:       log,
	}
}

// PlaceOrder validates every line against the catalog, decrements stock with
// the guarded update, and persists the order as an immutable snapshot. All
// items must belong to a single retailer.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID primitive.ObjectID, input PlaceOrderInput) (*models.Order, error) {
	items := input.Items
	if input.FromCart {
		cart, err := s.carts.FindByCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if len(cart.Items) == 0 {
			return nil, apperrors.Invalid("cart is empty")
		}
		items = items[:0]
		for _, cartItem := range cart.Items {
			items = append(items, OrderItemInput{
				ProductID: cartItem.ProductID.Hex(),
				Quantity:  cartItem.Quantity,
			})
		}
	}
	if len(items) == 0 {
		return nil, apperrors.Invalid("order must contain at least one item")
	}

	var (
		totalAmount float64
		orderItems  []models.OrderItem
		retailerID  primitive.ObjectID
	)
	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, apperrors.Invalid("invalid product ID %q", item.ProductID)
		}
		if item.Quantity < 1 {
			return nil, apperrors.Invalid("quantity must be at least 1")
		}

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, apperrors.Invalid("product %s is not available", product.Name)
		}
		if product.Stock < item.Quantity {
			return nil, apperrors.Conflict("insufficient stock for product %s", product.Name)
		}

		if retailerID.IsZero() {
			retailerID = product.RetailerID
		} else if retailerID != product.RetailerID {
			return nil, apperrors.Invalid("all items in an order must belong to the same retailer")
		}

		totalAmount += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	// Guarded decrements; roll back the ones already applied if a later line
	// loses a race.
	for i, item := range orderItems {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.restoreStock(ctx, orderItems[:i])
			if apperrors.Is(err, apperrors.KindConflict) {
				return nil, apperrors.Conflict("insufficient stock for product %s", item.Name)
			}
			return nil, err
		}
	}

	order := &models.Order{
		OrderNumber:     newOrderNumber(),
		CustomerID:      customerID,
		RetailerID:      retailerID,
		Items:           orderItems,
		TotalAmount:     totalAmount,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		s.restoreStock(ctx, orderItems)
		return nil, err
	}

	s.applyStats(ctx, order, 1)

	if input.FromCart {
		if err := s.carts.Delete(ctx, customerID); err != nil {
			s.log.Warn().Err(err).Str("order", order.OrderNumber).Msg("failed to clear cart after order")
		}
	}

	s.notify(order.RetailerID, "order:new", order)
	s.sendConfirmation(ctx, order)

	return order, nil
}

// UpdateStatus advances the fulfillment state machine. Only the order's
// retailer or an admin may call it; the transition table is enforced before
// any mutation.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, actorID primitive.ObjectID, role string, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, apperrors.Invalid("unknown order status %q", next)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && order.RetailerID != actorID {
		return nil, apperrors.Forbidden("not authorized to update this order")
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperrors.Conflict("cannot transition order from %s to %s", order.Status, next)
	}

	if next == models.OrderCancelled && order.Status.Restockable() {
		s.restoreStock(ctx, order.Items)
		s.applyStats(ctx, order, -1)
	}

	order.Status = next
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.notify(order.CustomerID, "order:status", order)
	return order, nil
}

// Cancel is the customer-initiated cancellation, allowed only while the order
// is pending or confirmed. Stock and aggregate stats are restored.
func (s *OrderService) Cancel(ctx context.Context, orderID, customerID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, apperrors.Forbidden("not authorized to cancel this order")
	}
	if !order.Status.Restockable() {
		return nil, apperrors.Conflict("cannot cancel order in status %s", order.Status)
	}

	s.restoreStock(ctx, order.Items)
	s.applyStats(ctx, order, -1)

	order.Status = models.OrderCancelled
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.notify(order.RetailerID, "order:status", order)
	return order, nil
}

// UpdatePaymentStatus records the gateway outcome and layers the documented
// side effects on top: completed confirms a pending order, failed cancels it
// and returns the stock.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, orderID primitive.ObjectID, status models.PaymentStatus, paymentID string) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Invalid("unknown payment status %q", status)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = status
	if paymentID != "" {
		order.PaymentID = paymentID
	}

	switch {
	case status == models.PaymentCompleted && order.Status == models.OrderPending:
		order.Status = models.OrderConfirmed
	case status == models.PaymentFailed && order.Status == models.OrderPending:
		s.restoreStock(ctx, order.Items)
		s.applyStats(ctx, order, -1)
		order.Status = models.OrderCancelled
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.notify(order.CustomerID, "payment:status", order)
	return order, nil
}

// Get returns the order if the actor is its customer, its retailer, or an
// admin.
func (s *OrderService) Get(ctx context.Context, orderID, actorID primitive.ObjectID, role string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && order.CustomerID != actorID && order.RetailerID != actorID {
		return nil, apperrors.Forbidden("not authorized to view this order")
	}
	return order, nil
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID primitive.ObjectID, status string, page, limit int64) ([]models.Order, int64, error) {
	return s.orders.List(ctx, repository.OrderFilter{
		CustomerID: &customerID,
		Status:     status,
		Page:       page,
		Limit:      limit,
	})
}

func (s *OrderService) ListForRetailer(ctx context.Context, retailerID primitive.ObjectID, status string, page, limit int64) ([]models.Order, int64, error) {
	return s.orders.List(ctx, repository.OrderFilter{
		RetailerID: &retailerID,
		Status:     status,
		Page:       page,
		Limit:      limit,
	})
}

func (s *OrderService) restoreStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.Error().Err(err).
				Str("product", item.ProductID.Hex()).
				Int("quantity", item.Quantity).
				Msg("failed to restore stock")
		}
	}
}

// applyStats shifts the customer and retailer aggregates by one order in the
// given direction.
func (s *OrderService) applyStats(ctx context.Context, order *models.Order, direction int) {
	amount := order.TotalAmount * float64(direction)
	if err := s.customers.ApplyOrderDelta(ctx, order.CustomerID, direction, amount); err != nil {
		s.log.Warn().Err(err).Str("order", order.OrderNumber).Msg("failed to update customer stats")
	}
	if err := s.retailers.ApplyOrderDelta(ctx, order.RetailerID, direction, amount); err != nil {
		s.log.Warn().Err(err).Str("order", order.OrderNumber).Msg("failed to update retailer stats")
	}
}

func (s *OrderService) notify(userID primitive.ObjectID, eventType string, order *models.Order) {
	if s.notifier == nil {
		return
	}
	s.notifier.Push(userID.Hex(), eventType, order)
}

func (s *OrderService) sendConfirmation(ctx context.Context, order *models.Order) {
	if s.mailer == nil || s.users == nil {
		return
	}
	user, err := s.users.FindByID(ctx, order.CustomerID)
	if err != nil {
		s.log.Warn().Err(err).Str("order", order.OrderNumber).Msg("failed to look up customer for confirmation mail")
		return
	}
	if err := s.mailer.SendOrderConfirmation(user.Email, order); err != nil {
		s.log.Warn().Err(err).Str("order", order.OrderNumber).Msg("failed to send confirmation mail")
	}
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().Unix(), uuid.NewString()[:8])
}
