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

type NearbyQuery struct {
	Lng         float64
	Lat         float64
	MaxDistance float64 // meters
	Category    string
	Limit       int64
}

type Locations struct {
	coll *mongo.Collection
}

func NewLocations(coll *mongo.Collection) *Locations {
	return &Locations{coll: coll}
}

func (r *Locations) Insert(ctx context.Context, location *models.Location) error {
	now := time.Now()
	location.CreatedAt = now
	location.UpdatedAt = now
	result, err := r.coll.InsertOne(ctx, location)
	if err != nil {
		return apperrors.Internal("error inserting location", err)
	}
	location.Id = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Locations) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	var location models.Location
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("location %s not found", id.Hex())
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching location", err)
	}
	return &location, nil
}

func (r *Locations) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Location, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, apperrors.Internal("error fetching locations", err)
	}
	var locations []models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, apperrors.Internal("error parsing locations", err)
	}
	return locations, nil
}

func (r *Locations) Update(ctx context.Context, location *models.Location) error {
	location.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": location.Id}, location)
	if err != nil {
		return apperrors.Internal("error updating location", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("location %s not found", location.Id.Hex())
	}
	return nil
}

func (r *Locations) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return apperrors.Internal("error deleting location", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("location %s not found", id.Hex())
	}
	return nil
}

// Nearby delegates the spherical nearest-neighbor search to the 2dsphere
// index; results come back ordered by distance.
func (r *Locations) Nearby(ctx context.Context, q NearbyQuery) ([]models.Location, error) {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": bson.A{q.Lng, q.Lat},
				},
				"$maxDistance": q.MaxDistance,
			},
		},
		"ownerType": models.OwnerRetailer,
		"isActive":  true,
	}
	if q.Category != "" {
		filter["businessCategory"] = q.Category
	}

	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, apperrors.Internal("error running proximity query", err)
	}
	var locations []models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, apperrors.Internal("error parsing locations", err)
	}
	return locations, nil
}
