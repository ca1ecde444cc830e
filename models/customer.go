package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerStats is the aggregate kept in step with the order lifecycle:
// incremented on placement, decremented on cancellation.
type CustomerStats struct {
	TotalOrders int        `bson:"totalOrders" json:"totalOrders"`
	TotalSpent  float64    `bson:"totalSpent" json:"totalSpent"`
	LastOrderAt *time.Time `bson:"lastOrderAt,omitempty" json:"lastOrderAt,omitempty"`
}

type Customer struct {
	Id               primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserId           primitive.ObjectID   `bson:"userId" json:"userId"`
	FirstName        string               `bson:"firstName" json:"firstName" validate:"required"`
	LastName         string               `bson:"lastName" json:"lastName" validate:"required"`
	Phone            string               `bson:"phone" json:"phone" validate:"required"`
	FavoriteStores   []primitive.ObjectID `bson:"favoriteStores,omitempty" json:"favoriteStores,omitempty"`
	FavoriteProducts []primitive.ObjectID `bson:"favoriteProducts,omitempty" json:"favoriteProducts,omitempty"`
	Stats            CustomerStats        `bson:"stats" json:"stats"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}
