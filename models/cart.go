package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem snapshots the product price at add time; the cart is not
// live-priced against the catalog.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity" validate:"required,min=1"`
	Price     float64            `bson:"price" json:"price"`
}

type Cart struct {
	Id         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	Items      []CartItem         `bson:"items" json:"items"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Item returns the index of productID in the cart, or -1.
func (c *Cart) Item(productID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
