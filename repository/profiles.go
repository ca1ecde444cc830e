package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
)

type Customers struct {
	coll *mongo.Collection
}

func NewCustomers(coll *mongo.Collection) *Customers {
	return &Customers{coll: coll}
}

func (r *Customers) Insert(ctx context.Context, customer *models.Customer) error {
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	result, err := r.coll.InsertOne(ctx, customer)
	if err != nil {
		return apperrors.Internal("error inserting customer profile", err)
	}
	customer.Id = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Customers) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Customer, error) {
	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("customer profile not found")
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching customer profile", err)
	}
	return &customer, nil
}

func (r *Customers) UpdateProfile(ctx context.Context, userID primitive.ObjectID, firstName, lastName, phone string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"firstName": firstName,
			"lastName":  lastName,
			"phone":     phone,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return apperrors.Internal("error updating customer profile", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("customer profile not found")
	}
	return nil
}

// ApplyOrderDelta shifts the order aggregates; negative deltas unwind a
// cancelled order.
func (r *Customers) ApplyOrderDelta(ctx context.Context, userID primitive.ObjectID, orders int, amount float64) error {
	update := bson.M{
		"$inc": bson.M{"stats.totalOrders": orders, "stats.totalSpent": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	if orders > 0 {
		update["$set"].(bson.M)["stats.lastOrderAt"] = time.Now()
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return apperrors.Internal("error updating customer stats", err)
	}
	return nil
}

func (r *Customers) AddFavoriteStore(ctx context.Context, userID, retailerID primitive.ObjectID) error {
	return r.updateFavorites(ctx, userID, bson.M{"$addToSet": bson.M{"favoriteStores": retailerID}})
}

func (r *Customers) RemoveFavoriteStore(ctx context.Context, userID, retailerID primitive.ObjectID) error {
	return r.updateFavorites(ctx, userID, bson.M{"$pull": bson.M{"favoriteStores": retailerID}})
}

func (r *Customers) AddFavoriteProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	return r.updateFavorites(ctx, userID, bson.M{"$addToSet": bson.M{"favoriteProducts": productID}})
}

func (r *Customers) RemoveFavoriteProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	return r.updateFavorites(ctx, userID, bson.M{"$pull": bson.M{"favoriteProducts": productID}})
}

func (r *Customers) updateFavorites(ctx context.Context, userID primitive.ObjectID, update bson.M) error {
	update["$set"] = bson.M{"updatedAt": time.Now()}
	result, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return apperrors.Internal("error updating favorites", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("customer profile not found")
	}
	return nil
}

type Retailers struct {
	coll *mongo.Collection
}

func NewRetailers(coll *mongo.Collection) *Retailers {
	return &Retailers{coll: coll}
}

func (r *Retailers) Insert(ctx context.Context, retailer *models.Retailer) error {
	now := time.Now()
	retailer.CreatedAt = now
	retailer.UpdatedAt = now
	result, err := r.coll.InsertOne(ctx, retailer)
	if err != nil {
		return apperrors.Internal("error inserting retailer profile", err)
	}
	retailer.Id = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Retailers) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Retailer, error) {
	var retailer models.Retailer
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&retailer)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("retailer profile not found")
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching retailer profile", err)
	}
	return &retailer, nil
}

func (r *Retailers) UpdateProfile(ctx context.Context, userID primitive.ObjectID, businessName, description, phone string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"businessName": businessName,
			"description":  description,
			"phone":        phone,
			"updatedAt":    time.Now(),
		}},
	)
	if err != nil {
		return apperrors.Internal("error updating retailer profile", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("retailer profile not found")
	}
	return nil
}

// SetRating replaces the review aggregate after a new review lands.
func (r *Retailers) SetRating(ctx context.Context, userID primitive.ObjectID, average float64, total int) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"averageRating": average,
			"totalRatings":  total,
			"updatedAt":     time.Now(),
		}},
	)
	if err != nil {
		return apperrors.Internal("error updating retailer rating", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("retailer profile not found")
	}
	return nil
}

func (r *Retailers) ApplyOrderDelta(ctx context.Context, userID primitive.ObjectID, orders int, revenue float64) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$inc": bson.M{"stats.totalOrders": orders, "stats.totalRevenue": revenue},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return apperrors.Internal("error updating retailer stats", err)
	}
	return nil
}
