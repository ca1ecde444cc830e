package models

type Address struct {
	Street     string `bson:"street" json:"street" validate:"required"`
	City       string `bson:"city" json:"city" validate:"required"`
	State      string `bson:"state" json:"state" validate:"required"`
	PostalCode string `bson:"postalCode" json:"postalCode" validate:"required"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
	Formatted  string `bson:"formattedAddress,omitempty" json:"formattedAddress,omitempty"`
}
