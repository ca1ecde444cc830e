package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OwnerCustomer = "customer"
	OwnerRetailer = "retailer"
)

// GeoPoint is a GeoJSON Point, coordinates ordered [longitude, latitude] as
// MongoDB's 2dsphere index expects.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

func (p GeoPoint) Lng() float64 { return p.Coordinates[0] }
func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// DayHours holds opening times as "HH:MM" strings compared lexicographically,
// matching how retailers enter them.
type DayHours struct {
	Open   string `bson:"open" json:"open"`
	Close  string `bson:"close" json:"close"`
	IsOpen bool   `bson:"isOpen" json:"isOpen"`
}

// OperatingHours maps lowercase weekday names ("monday").
type OperatingHours map[string]DayHours

func weekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// titleDay capitalizes a lowercase weekday key for display. Keys are plain
// ASCII so a byte-level uppercase is enough.
func titleDay(day string) string {
	if day == "" {
		return day
	}
	return strings.ToUpper(day[:1]) + day[1:]
}

// IsOpenAt evaluates the schedule against t's weekday and local HH:MM.
func (h OperatingHours) IsOpenAt(t time.Time) bool {
	hours, ok := h[weekdayKey(t)]
	if !ok || !hours.IsOpen {
		return false
	}
	now := t.Format("15:04")
	return now >= hours.Open && now <= hours.Close
}

// NextOpening scans forward up to a week from t for the next opening slot.
func (h OperatingHours) NextOpening(t time.Time) (day string, open string, ok bool) {
	for i := 0; i < 7; i++ {
		d := t.AddDate(0, 0, i)
		key := weekdayKey(d)
		hours, exists := h[key]
		if !exists || !hours.IsOpen {
			continue
		}
		if i == 0 && t.Format("15:04") >= hours.Open {
			continue
		}
		return titleDay(key), hours.Open, true
	}
	return "", "", false
}

// Location is a geocoded point owned by a customer (delivery address) or a
// retailer (storefront).
type Location struct {
	Id               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID          primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	OwnerType        string             `bson:"ownerType" json:"ownerType"`
	StoreName        string             `bson:"storeName,omitempty" json:"storeName,omitempty"`
	BusinessCategory string             `bson:"businessCategory,omitempty" json:"businessCategory,omitempty"`
	Address          Address            `bson:"address" json:"address"`
	Geo              GeoPoint           `bson:"location" json:"location"`
	Hours            OperatingHours     `bson:"operatingHours,omitempty" json:"operatingHours,omitempty"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
