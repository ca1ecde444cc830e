package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/repository"
)

type ProductInput struct {
	Name              string   `json:"name" validate:"required"`
	Description       string   `json:"description" validate:"required"`
	Price             float64  `json:"price" validate:"required,gt=0"`
	Stock             int      `json:"stock" validate:"min=0"`
	Category          string   `json:"category" validate:"required"`
	Images            []string `json:"images"`
	LowStockThreshold int      `json:"lowStockThreshold" validate:"min=0"`
}

type ProductService struct {
	products ProductStore
	notifier Notifier
	log      zerolog.Logger
}

func NewProductService(products ProductStore, notifier Notifier, log zerolog.Logger) *ProductService {
	return &ProductService{products: products, notifier: notifier, log: log}
}

func (s *ProductService) Create(ctx context.Context, retailerID primitive.ObjectID, input ProductInput) (*models.Product, error) {
	product := &models.Product{
		RetailerID:        retailerID,
		Name:              input.Name,
		Description:       input.Description,
		Price:             input.Price,
		Stock:             input.Stock,
		Category:          input.Category,
		Images:            input.Images,
		IsActive:          true,
		LowStockThreshold: input.LowStockThreshold,
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update rewrites the catalog fields of a product owned by retailerID. Stock
// is not touched here; the order lifecycle owns it.
func (s *ProductService) Update(ctx context.Context, retailerID, productID primitive.ObjectID, input ProductInput) (*models.Product, error) {
	product, err := s.owned(ctx, retailerID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.Images = input.Images
	product.LowStockThreshold = input.LowStockThreshold

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// AdjustStock is the retailer's manual restock/correction path; delta may be
// negative but never below zero on hand.
func (s *ProductService) AdjustStock(ctx context.Context, retailerID, productID primitive.ObjectID, delta int) (*models.Product, error) {
	product, err := s.owned(ctx, retailerID, productID)
	if err != nil {
		return nil, err
	}
	if delta == 0 {
		return product, nil
	}
	if delta > 0 {
		if err := s.products.IncrementStock(ctx, productID, delta); err != nil {
			return nil, err
		}
	} else {
		if err := s.products.DecrementStock(ctx, productID, -delta); err != nil {
			if apperrors.Is(err, apperrors.KindConflict) {
				return nil, apperrors.Conflict("cannot reduce stock below zero for product %s", product.Name)
			}
			return nil, err
		}
	}

	product, err = s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil && product.Stock < product.LowStockThreshold {
		s.notifier.Push(retailerID.Hex(), "inventory:low", product)
	}
	return product, nil
}

func (s *ProductService) SetActive(ctx context.Context, retailerID, productID primitive.ObjectID, active bool) (*models.Product, error) {
	product, err := s.owned(ctx, retailerID, productID)
	if err != nil {
		return nil, err
	}
	product.IsActive = active
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, productID primitive.ObjectID) (*models.Product, error) {
	return s.products.FindByID(ctx, productID)
}

func (s *ProductService) Search(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	return s.products.List(ctx, filter)
}

func (s *ProductService) LowStock(ctx context.Context, retailerID primitive.ObjectID) ([]models.Product, error) {
	return s.products.ListLowStock(ctx, retailerID)
}

func (s *ProductService) owned(ctx context.Context, retailerID, productID primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.RetailerID != retailerID {
		return nil, apperrors.Forbidden("product does not belong to this retailer")
	}
	return product, nil
}
