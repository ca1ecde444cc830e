package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one customer's rating of a store. RetailerID is the retailer's
// user ID, matching how orders and locations reference the store. A unique
// compound index keeps it to one review per customer per store.
type Review struct {
	Id         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RetailerID primitive.ObjectID `bson:"retailerId" json:"retailerId"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	Rating     int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment    string             `bson:"comment" json:"comment"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
