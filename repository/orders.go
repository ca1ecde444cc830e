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

type OrderFilter struct {
	CustomerID *primitive.ObjectID
	RetailerID *primitive.ObjectID
	Status     string
	Page       int64
	Limit      int64
}

// ProductSales is one row of the top-products aggregation.
type ProductSales struct {
	ProductID primitive.ObjectID `bson:"_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int64              `bson:"quantity" json:"quantity"`
	Revenue   float64            `bson:"revenue" json:"revenue"`
}

type Orders struct {
	coll *mongo.Collection
}

func NewOrders(coll *mongo.Collection) *Orders {
	return &Orders{coll: coll}
}

func (r *Orders) Insert(ctx context.Context, order *models.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	result, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return apperrors.Internal("error inserting order", err)
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Orders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("order %s not found", id.Hex())
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching order", err)
	}
	return &order, nil
}

func (r *Orders) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"razorpayOrderId": razorpayOrderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("order for payment %s not found", razorpayOrderID)
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching order", err)
	}
	return &order, nil
}

func (r *Orders) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return apperrors.Internal("error updating order", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("order %s not found", order.ID.Hex())
	}
	return nil
}

func (r *Orders) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	query := bson.M{}
	if filter.CustomerID != nil {
		query["customerId"] = *filter.CustomerID
	}
	if filter.RetailerID != nil {
		query["retailerId"] = *filter.RetailerID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, apperrors.Internal("error counting orders", err)
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, apperrors.Internal("error fetching orders", err)
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, apperrors.Internal("error parsing orders", err)
	}
	return orders, total, nil
}

// StatusCounts groups orders by status. A zero retailerID aggregates across
// every retailer for the platform overview.
func (r *Orders) StatusCounts(ctx context.Context, retailerID primitive.ObjectID) (map[models.OrderStatus]int64, error) {
	match := bson.M{}
	if !retailerID.IsZero() {
		match["retailerId"] = retailerID
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Internal("error aggregating order statuses", err)
	}
	var rows []struct {
		Status models.OrderStatus `bson:"_id"`
		Count  int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, apperrors.Internal("error parsing status counts", err)
	}
	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// RevenueSince sums non-cancelled order totals in the window. A zero
// retailerID covers the whole platform.
func (r *Orders) RevenueSince(ctx context.Context, retailerID primitive.ObjectID, since time.Time) (float64, error) {
	match := bson.M{
		"createdAt": bson.M{"$gte": since},
		"status":    bson.M{"$ne": models.OrderCancelled},
	}
	if !retailerID.IsZero() {
		match["retailerId"] = retailerID
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$totalAmount"}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, apperrors.Internal("error aggregating revenue", err)
	}
	var rows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, apperrors.Internal("error parsing revenue", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Revenue, nil
}

func (r *Orders) TopProducts(ctx context.Context, retailerID primitive.ObjectID, since time.Time, limit int64) ([]ProductSales, error) {
	if limit < 1 {
		limit = 5
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"retailerId": retailerID,
			"createdAt":  bson.M{"$gte": since},
			"status":     bson.M{"$ne": models.OrderCancelled},
		}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$items.productId",
			"name":     bson.M{"$first": "$items.name"},
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.M{"quantity": -1}}},
		{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Internal("error aggregating top products", err)
	}
	var sales []ProductSales
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, apperrors.Internal("error parsing top products", err)
	}
	return sales, nil
}
