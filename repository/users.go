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

type Users struct {
	coll *mongo.Collection
}

func NewUsers(coll *mongo.Collection) *Users {
	return &Users{coll: coll}
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching user", err)
	}
	return &user, nil
}

func (r *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching user", err)
	}
	return &user, nil
}

func (r *Users) Insert(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("email already registered")
		}
		return apperrors.Internal("error inserting user", err)
	}
	user.Id = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Users) CountByRole(ctx context.Context, role string) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, apperrors.Internal("error counting users", err)
	}
	return total, nil
}

func (r *Users) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}},
	)
	if err != nil {
		return apperrors.Internal("error updating user", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}
