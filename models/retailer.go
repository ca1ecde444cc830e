package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RetailerStats struct {
	TotalOrders  int     `bson:"totalOrders" json:"totalOrders"`
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
}

type Retailer struct {
	Id            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserId        primitive.ObjectID `bson:"userId" json:"userId"`
	BusinessName  string             `bson:"businessName" json:"businessName" validate:"required"`
	Description   string             `bson:"description" json:"description"`
	Phone         string             `bson:"phone" json:"phone" validate:"required"`
	BusinessType  string             `bson:"businessType" json:"businessType" validate:"required,oneof=grocery electronics clothing pharmacy general"`
	AverageRating float64            `bson:"averageRating" json:"averageRating"`
	TotalRatings  int                `bson:"totalRatings" json:"totalRatings"`
	Stats         RetailerStats      `bson:"stats" json:"stats"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
