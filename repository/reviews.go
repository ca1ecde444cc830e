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

type Reviews struct {
	coll *mongo.Collection
}

func NewReviews(coll *mongo.Collection) *Reviews {
	return &Reviews{coll: coll}
}

func (r *Reviews) Insert(ctx context.Context, review *models.Review) error {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	result, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("store already reviewed by this customer")
		}
		return apperrors.Internal("error inserting review", err)
	}
	review.Id = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Reviews) ListByRetailer(ctx context.Context, retailerID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error) {
	query := bson.M{"retailerId": retailerID}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, apperrors.Internal("error counting reviews", err)
	}

	page, limit = normalizePage(page, limit)
	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, apperrors.Internal("error fetching reviews", err)
	}
	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, apperrors.Internal("error parsing reviews", err)
	}
	return reviews, total, nil
}

// RatingSummary aggregates the store's average rating and review count in one
// pass so the retailer document can be kept in step with the reviews.
func (r *Reviews) RatingSummary(ctx context.Context, retailerID primitive.ObjectID) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"retailerId": retailerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"total":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, apperrors.Internal("error aggregating ratings", err)
	}
	var rows []struct {
		Average float64 `bson:"average"`
		Total   int64   `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, apperrors.Internal("error parsing rating summary", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Average, rows[0].Total, nil
}
