// Package repository implements the MongoDB-backed stores the services
// consume. Each store owns one collection and translates driver errors into
// the application error taxonomy.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
)

type ProductFilter struct {
	RetailerID *primitive.ObjectID
	Category   string
	Name       string
	ActiveOnly bool
	Page       int64
	Limit      int64
}

type InventorySummary struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	LowStock   int64 `json:"lowStock"`
	OutOfStock int64 `json:"outOfStock"`
}

type Products struct {
	coll *mongo.Collection
}

func NewProducts(coll *mongo.Collection) *Products {
	return &Products{coll: coll}
}

func (r *Products) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("product %s not found", id.Hex())
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching product", err)
	}
	return &product, nil
}

func (r *Products) Insert(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	result, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return apperrors.Internal("error inserting product", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Products) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return apperrors.Internal("error updating product", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("product %s not found", product.ID.Hex())
	}
	return nil
}

func (r *Products) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := bson.M{}
	if filter.RetailerID != nil {
		query["retailerId"] = *filter.RetailerID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": filter.Name, "$options": "i"}
	}
	if filter.ActiveOnly {
		query["isActive"] = true
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, apperrors.Internal("error counting products", err)
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, apperrors.Internal("error fetching products", err)
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, apperrors.Internal("error parsing products", err)
	}
	return products, total, nil
}

// DecrementStock applies the guarded decrement "stock -= qty where
// stock >= qty" as one atomic update, so concurrent orders cannot race the
// stock check past zero.
func (r *Products) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return apperrors.Internal("error updating stock", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.Conflict("insufficient stock for product %s", id.Hex())
	}
	return nil
}

func (r *Products) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return apperrors.Internal("error restoring stock", err)
	}
	return nil
}

func (r *Products) InventorySummary(ctx context.Context, retailerID primitive.ObjectID) (*InventorySummary, error) {
	base := bson.M{"retailerId": retailerID}
	summary := &InventorySummary{}

	var err error
	if summary.Total, err = r.coll.CountDocuments(ctx, base); err != nil {
		return nil, apperrors.Internal("error counting products", err)
	}
	if summary.Active, err = r.coll.CountDocuments(ctx, bson.M{"retailerId": retailerID, "isActive": true}); err != nil {
		return nil, apperrors.Internal("error counting active products", err)
	}
	if summary.LowStock, err = r.coll.CountDocuments(ctx, bson.M{
		"retailerId": retailerID,
		"$expr":      bson.M{"$lt": bson.A{"$stock", "$lowStockThreshold"}},
	}); err != nil {
		return nil, apperrors.Internal("error counting low stock products", err)
	}
	if summary.OutOfStock, err = r.coll.CountDocuments(ctx, bson.M{"retailerId": retailerID, "stock": 0}); err != nil {
		return nil, apperrors.Internal("error counting out of stock products", err)
	}
	return summary, nil
}

func (r *Products) ListLowStock(ctx context.Context, retailerID primitive.ObjectID) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{
		"retailerId": retailerID,
		"$expr":      bson.M{"$lt": bson.A{"$stock", "$lowStockThreshold"}},
	})
	if err != nil {
		return nil, apperrors.Internal("error fetching low stock products", err)
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, apperrors.Internal("error parsing products", err)
	}
	return products, nil
}

func normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
