package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product stock is only ever mutated by the order lifecycle: decremented at
// placement, restored on cancellation or payment failure.
type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"productId,omitempty"`
	RetailerID        primitive.ObjectID `bson:"retailerId" json:"retailerId"`
	Name              string             `bson:"name" json:"name" validate:"required"`
	Description       string             `bson:"description" json:"description" validate:"required"`
	Price             float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Stock             int                `bson:"stock" json:"stock" validate:"min=0"`
	Category          string             `bson:"category" json:"category" validate:"required"`
	Images            []string           `bson:"images" json:"images"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	LowStockThreshold int                `bson:"lowStockThreshold" json:"lowStockThreshold"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
