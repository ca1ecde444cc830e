package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
)

type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the customer's cart, creating an empty one on first use.
func (s *CartService) Get(ctx context.Context, customerID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.FindByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}
	cart = &models.Cart{CustomerID: customerID, Items: []models.CartItem{}}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem snapshots the current price and merges quantity with any existing
// line for the same product.
func (s *CartService) AddItem(ctx context.Context, customerID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.Invalid("quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, apperrors.Invalid("product %s is not available", product.Name)
	}

	cart, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if idx := cart.Item(productID); idx >= 0 {
		newQuantity := cart.Items[idx].Quantity + quantity
		if product.Stock < newQuantity {
			return nil, apperrors.Conflict("insufficient stock for product %s", product.Name)
		}
		cart.Items[idx].Quantity = newQuantity
	} else {
		if product.Stock < quantity {
			return nil, apperrors.Conflict("insufficient stock for product %s", product.Name)
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the line quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, customerID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	cart, err := s.carts.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	idx := cart.Item(productID)
	if idx < 0 {
		return nil, apperrors.NotFound("item not found in cart")
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product.Stock < quantity {
			return nil, apperrors.Conflict("insufficient stock for product %s", product.Name)
		}
		cart.Items[idx].Quantity = quantity
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, productID primitive.ObjectID) (*models.Cart, error) {
	return s.UpdateQuantity(ctx, customerID, productID, 0)
}

func (s *CartService) Clear(ctx context.Context, customerID primitive.ObjectID) error {
	return s.carts.Delete(ctx, customerID)
}
