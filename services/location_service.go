package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/repository"
)

const earthRadiusMeters = 6371e3

type LocationInput struct {
	StoreName        string                `json:"storeName"`
	BusinessCategory string                `json:"businessCategory"`
	Address          models.Address        `json:"address" validate:"required"`
	Hours            models.OperatingHours `json:"operatingHours"`
}

type NearbyInput struct {
	Lng         float64 `json:"lng"`
	Lat         float64 `json:"lat"`
	MaxDistance float64 `json:"maxDistance"`
	Category    string  `json:"category"`
	OpenOnly    bool    `json:"openOnly"`
	SortBy      string  `json:"sortBy"` // distance | rating
	Limit       int64   `json:"limit"`
}

// NearbyStore is one proximity result with display fields computed
// server-side.
type NearbyStore struct {
	models.Location
	DistanceMeters int          `json:"distanceMeters"`
	IsOpen         bool         `json:"isOpen"`
	NextOpening    *NextOpening `json:"nextOpening,omitempty"`
	Rating         float64      `json:"rating"`
}

type NextOpening struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

type LocationService struct {
	locations LocationStore
	retailers RetailerStore
	geocoder  Geocoder
	now       func() time.Time
	log       zerolog.Logger
}

func NewLocationService(locations LocationStore, retailers RetailerStore, geocoder Geocoder, log zerolog.Logger) *LocationService {
	return &LocationService{
		locations: locations,
		retailers: retailers,
		geocoder:  geocoder,
		now:       time.Now,
		log:       log,
	}
}

// AddLocation geocodes the address and stores the GeoJSON point for the
// owner. ownerType distinguishes customer delivery addresses from retailer
// storefronts.
func (s *LocationService) AddLocation(ctx context.Context, ownerID primitive.ObjectID, ownerType string, input LocationInput) (*models.Location, error) {
	if ownerType != models.OwnerCustomer && ownerType != models.OwnerRetailer {
		return nil, apperrors.Invalid("unknown owner type %q", ownerType)
	}
	if s.geocoder == nil {
		return nil, apperrors.Internal("geocoder is not configured", nil)
	}

	query := fmt.Sprintf("%s, %s, %s %s", input.Address.Street, input.Address.City, input.Address.State, input.Address.PostalCode)
	lng, lat, formatted, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalid, "failed to geocode address", err)
	}

	address := input.Address
	address.Formatted = formatted

	location := &models.Location{
		OwnerID:          ownerID,
		OwnerType:        ownerType,
		StoreName:        input.StoreName,
		BusinessCategory: input.BusinessCategory,
		Address:          address,
		Geo:              models.NewGeoPoint(lng, lat),
		Hours:            input.Hours,
		IsActive:         true,
	}
	if err := s.locations.Insert(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) ListForOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Location, error) {
	return s.locations.FindByOwner(ctx, ownerID)
}

func (s *LocationService) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	return s.locations.Delete(ctx, id, ownerID)
}

// UpdateLocation re-geocodes the new address and replaces the editable
// fields. The owner check keeps one account from editing another's location.
func (s *LocationService) UpdateLocation(ctx context.Context, id, ownerID primitive.ObjectID, input LocationInput) (*models.Location, error) {
	location, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location.OwnerID != ownerID {
		return nil, apperrors.Forbidden("location does not belong to this owner")
	}

	query := fmt.Sprintf("%s, %s, %s %s", input.Address.Street, input.Address.City, input.Address.State, input.Address.PostalCode)
	lng, lat, formatted, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalid, "failed to geocode address", err)
	}

	location.StoreName = input.StoreName
	location.BusinessCategory = input.BusinessCategory
	location.Address = input.Address
	location.Address.Formatted = formatted
	location.Geo = models.NewGeoPoint(lng, lat)
	if input.Hours != nil {
		location.Hours = input.Hours
	}
	if err := s.locations.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) UpdateHours(ctx context.Context, id, ownerID primitive.ObjectID, hours models.OperatingHours) (*models.Location, error) {
	location, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location.OwnerID != ownerID {
		return nil, apperrors.Forbidden("location does not belong to this owner")
	}
	location.Hours = hours
	if err := s.locations.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// FindNearby validates the coordinates before touching the database, runs the
// $near query, then computes display distance, open state, and sorting.
func (s *LocationService) FindNearby(ctx context.Context, input NearbyInput) ([]NearbyStore, error) {
	if err := ValidateCoordinates(input.Lng, input.Lat); err != nil {
		return nil, err
	}
	if input.MaxDistance <= 0 {
		input.MaxDistance = 10000
	}
	if input.SortBy == "" {
		input.SortBy = "distance"
	}
	if input.SortBy != "distance" && input.SortBy != "rating" {
		return nil, apperrors.Invalid("sortBy must be distance or rating")
	}

	locations, err := s.locations.Nearby(ctx, repository.NearbyQuery{
		Lng:         input.Lng,
		Lat:         input.Lat,
		MaxDistance: input.MaxDistance,
		Category:    input.Category,
		Limit:       input.Limit,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	results := make([]NearbyStore, 0, len(locations))
	for _, loc := range locations {
		store := NearbyStore{
			Location:       loc,
			DistanceMeters: int(math.Round(Haversine(input.Lat, input.Lng, loc.Geo.Lat(), loc.Geo.Lng()))),
			IsOpen:         loc.Hours.IsOpenAt(now),
		}
		if !store.IsOpen {
			if day, open, ok := loc.Hours.NextOpening(now); ok {
				store.NextOpening = &NextOpening{Day: day, Time: open}
			}
		}
		if s.retailers != nil {
			if retailer, err := s.retailers.FindByUserID(ctx, loc.OwnerID); err == nil {
				store.Rating = retailer.AverageRating
			}
		}
		results = append(results, store)
	}

	if input.OpenOnly {
		open := results[:0]
		for _, store := range results {
			if store.IsOpen {
				open = append(open, store)
			}
		}
		results = open
	}

	switch input.SortBy {
	case "rating":
		sort.SliceStable(results, func(i, j int) bool { return results[i].Rating > results[j].Rating })
	default:
		sort.SliceStable(results, func(i, j int) bool { return results[i].DistanceMeters < results[j].DistanceMeters })
	}

	return results, nil
}

// ValidateCoordinates rejects out-of-range values before any database query.
func ValidateCoordinates(lng, lat float64) error {
	if lat < -90 || lat > 90 {
		return apperrors.Invalid("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return apperrors.Invalid("longitude must be between -180 and 180")
	}
	return nil
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
