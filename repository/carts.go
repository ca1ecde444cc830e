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

type Carts struct {
	coll *mongo.Collection
}

func NewCarts(coll *mongo.Collection) *Carts {
	return &Carts{coll: coll}
}

func (r *Carts) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"customerId": customerID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("cart not found")
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching cart", err)
	}
	return &cart, nil
}

// Save upserts the customer's cart document.
func (r *Carts) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"customerId": cart.CustomerID},
		cart,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return apperrors.Internal("error saving cart", err)
	}
	return nil
}

func (r *Carts) Delete(ctx context.Context, customerID primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"customerId": customerID})
	if err != nil {
		return apperrors.Internal("error clearing cart", err)
	}
	return nil
}
