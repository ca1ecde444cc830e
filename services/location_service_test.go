package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
)

// Bengaluru city center, used as the search origin in these tests.
const (
	originLat = 12.9716
	originLng = 77.5946
)

func storeAt(name string, lng, lat float64, hours models.OperatingHours) *models.Location {
	return &models.Location{
		Id:        primitive.NewObjectID(),
		OwnerID:   primitive.NewObjectID(),
		OwnerType: models.OwnerRetailer,
		StoreName: name,
		Geo:       models.NewGeoPoint(lng, lat),
		Hours:     hours,
		IsActive:  true,
	}
}

func newLocationFixture(locations ...*models.Location) (*LocationService, *fakeLocations, *fakeRetailers) {
	fakeLocs := newFakeLocations(locations...)
	retailers := newFakeRetailers()
	service := NewLocationService(fakeLocs, retailers, &fakeGeocoder{lng: originLng, lat: originLat, formatted: "MG Road, Bengaluru"}, zerolog.Nop())
	return service, fakeLocs, retailers
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(77.59, 12.97))
	assert.NoError(t, ValidateCoordinates(-180, -90))
	assert.NoError(t, ValidateCoordinates(180, 90))

	assert.Error(t, ValidateCoordinates(0, 91))
	assert.Error(t, ValidateCoordinates(0, -91))
	assert.Error(t, ValidateCoordinates(181, 0))
	assert.Error(t, ValidateCoordinates(-181, 0))
}

func TestFindNearbyRejectsBadCoordinatesBeforeQuerying(t *testing.T) {
	service, locs, _ := newLocationFixture()

	_, err := service.FindNearby(context.Background(), NearbyInput{Lng: 200, Lat: originLat})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalid))
	assert.False(t, locs.nearbyCalled, "a rejected input must never reach the store")

	_, err = service.FindNearby(context.Background(), NearbyInput{Lng: originLng, Lat: 95})
	require.Error(t, err)
	assert.False(t, locs.nearbyCalled)
}

func TestFindNearbyRejectsUnknownSort(t *testing.T) {
	service, locs, _ := newLocationFixture()
	_, err := service.FindNearby(context.Background(), NearbyInput{Lng: originLng, Lat: originLat, SortBy: "name"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalid))
	assert.False(t, locs.nearbyCalled)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Bengaluru to Chennai is roughly 290 km great-circle.
	d := Haversine(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290_000, d, 5_000)

	assert.Equal(t, 0.0, Haversine(originLat, originLng, originLat, originLng))
}

func TestFindNearbySortsByDistance(t *testing.T) {
	near := storeAt("Near", originLng+0.005, originLat, nil)
	far := storeAt("Far", originLng+0.05, originLat, nil)
	service, _, _ := newLocationFixture(far, near)

	results, err := service.FindNearby(context.Background(), NearbyInput{Lng: originLng, Lat: originLat})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Near", results[0].StoreName)
	assert.Equal(t, "Far", results[1].StoreName)
	assert.Less(t, results[0].DistanceMeters, results[1].DistanceMeters)
}

func TestFindNearbySortsByRating(t *testing.T) {
	low := storeAt("LowRated", originLng+0.001, originLat, nil)
	high := storeAt("HighRated", originLng+0.02, originLat, nil)
	service, _, retailers := newLocationFixture(low, high)

	require.NoError(t, retailers.Insert(context.Background(), &models.Retailer{UserId: low.OwnerID, AverageRating: 2.1}))
	require.NoError(t, retailers.Insert(context.Background(), &models.Retailer{UserId: high.OwnerID, AverageRating: 4.8}))

	results, err := service.FindNearby(context.Background(), NearbyInput{Lng: originLng, Lat: originLat, SortBy: "rating"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "HighRated", results[0].StoreName)
	assert.Equal(t, 4.8, results[0].Rating)
}

func TestFindNearbyOpenOnlyFilter(t *testing.T) {
	always := models.OperatingHours{}
	for _, day := range []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		always[day] = models.DayHours{Open: "00:00", Close: "23:59", IsOpen: true}
	}

	open := storeAt("Open", originLng+0.001, originLat, always)
	closed := storeAt("Closed", originLng+0.002, originLat, nil)
	service, _, _ := newLocationFixture(open, closed)

	results, err := service.FindNearby(context.Background(), NearbyInput{Lng: originLng, Lat: originLat, OpenOnly: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Open", results[0].StoreName)
	assert.True(t, results[0].IsOpen)
}

func TestFindNearbyReportsNextOpening(t *testing.T) {
	hours := models.OperatingHours{
		"tuesday": {Open: "09:00", Close: "18:00", IsOpen: true},
	}
	store := storeAt("Weekly", originLng+0.001, originLat, hours)
	service, _, _ := newLocationFixture(store)

	// 2024-01-15 10:00 is a Monday morning
	service.now = func() time.Time {
		ts, _ := time.Parse("2006-01-02 15:04", "2024-01-15 10:00")
		return ts
	}

	results, err := service.FindNearby(context.Background(), NearbyInput{Lng: originLng, Lat: originLat})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].IsOpen)
	require.NotNil(t, results[0].NextOpening)
	assert.Equal(t, "Tuesday", results[0].NextOpening.Day)
	assert.Equal(t, "09:00", results[0].NextOpening.Time)
}

func TestAddLocationGeocodesAddress(t *testing.T) {
	service, locs, _ := newLocationFixture()
	ownerID := primitive.NewObjectID()

	location, err := service.AddLocation(context.Background(), ownerID, models.OwnerRetailer, LocationInput{
		StoreName:        "Corner Grocery",
		BusinessCategory: "grocery",
		Address:          models.Address{Street: "12 MG Road", City: "Bengaluru", State: "KA", PostalCode: "560001"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Point", location.Geo.Type)
	assert.Equal(t, originLng, location.Geo.Lng())
	assert.Equal(t, originLat, location.Geo.Lat())
	assert.Equal(t, "MG Road, Bengaluru", location.Address.Formatted)
	assert.True(t, location.IsActive)
	assert.Len(t, locs.items, 1)
}

func TestAddLocationRejectsUnknownOwnerType(t *testing.T) {
	service, _, _ := newLocationFixture()
	_, err := service.AddLocation(context.Background(), primitive.NewObjectID(), "warehouse", LocationInput{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalid))
}

func TestUpdateLocationRegeocodesAddress(t *testing.T) {
	store := storeAt("Corner Grocery", 80.0, 13.0, nil)
	service, locs, _ := newLocationFixture(store)

	updated, err := service.UpdateLocation(context.Background(), store.Id, store.OwnerID, LocationInput{
		StoreName:        "Corner Grocery & More",
		BusinessCategory: "grocery",
		Address:          models.Address{Street: "14 MG Road", City: "Bengaluru", State: "KA", PostalCode: "560001"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Grocery & More", updated.StoreName)
	assert.Equal(t, originLng, updated.Geo.Lng())
	assert.Equal(t, originLat, updated.Geo.Lat())
	assert.Equal(t, "MG Road, Bengaluru", updated.Address.Formatted)

	stored, err := locs.FindByID(context.Background(), store.Id)
	require.NoError(t, err)
	assert.Equal(t, "14 MG Road", stored.Address.Street)
}

func TestUpdateLocationEnforcesOwnership(t *testing.T) {
	store := storeAt("Corner Grocery", originLng, originLat, nil)
	service, _, _ := newLocationFixture(store)

	_, err := service.UpdateLocation(context.Background(), store.Id, primitive.NewObjectID(), LocationInput{
		Address: models.Address{Street: "1 Elsewhere", City: "Bengaluru", State: "KA", PostalCode: "560001"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestUpdateHoursEnforcesOwnership(t *testing.T) {
	store := storeAt("Corner Grocery", originLng, originLat, nil)
	service, _, _ := newLocationFixture(store)

	_, err := service.UpdateHours(context.Background(), store.Id, primitive.NewObjectID(), models.OperatingHours{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	updated, err := service.UpdateHours(context.Background(), store.Id, store.OwnerID, models.OperatingHours{
		"monday": {Open: "08:00", Close: "20:00", IsOpen: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00", updated.Hours["monday"].Open)
}
