package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
)

// FavoriteService maintains a customer's saved stores and products.
type FavoriteService struct {
	customers CustomerStore
	retailers RetailerStore
	products  ProductStore
}

func NewFavoriteService(customers CustomerStore, retailers RetailerStore, products ProductStore) *FavoriteService {
	return &FavoriteService{customers: customers, retailers: retailers, products: products}
}

func (s *FavoriteService) FavoriteStore(ctx context.Context, customerID, retailerID primitive.ObjectID) error {
	if _, err := s.retailers.FindByUserID(ctx, retailerID); err != nil {
		return err
	}
	return s.customers.AddFavoriteStore(ctx, customerID, retailerID)
}

func (s *FavoriteService) UnfavoriteStore(ctx context.Context, customerID, retailerID primitive.ObjectID) error {
	return s.customers.RemoveFavoriteStore(ctx, customerID, retailerID)
}

func (s *FavoriteService) FavoriteProduct(ctx context.Context, customerID, productID primitive.ObjectID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return apperrors.Invalid("product is not available")
	}
	return s.customers.AddFavoriteProduct(ctx, customerID, productID)
}

func (s *FavoriteService) UnfavoriteProduct(ctx context.Context, customerID, productID primitive.ObjectID) error {
	return s.customers.RemoveFavoriteProduct(ctx, customerID, productID)
}

// Favorites returns the saved store and product IDs for the customer.
func (s *FavoriteService) Favorites(ctx context.Context, customerID primitive.ObjectID) (stores, products []primitive.ObjectID, err error) {
	customer, err := s.customers.FindByUserID(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	return customer.FavoriteStores, customer.FavoriteProducts, nil
}
