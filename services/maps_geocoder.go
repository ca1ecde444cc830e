package services

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// MapsGeocoder resolves addresses through the Google Maps Geocoding API.
type MapsGeocoder struct {
	client *maps.Client
}

func NewMapsGeocoder(apiKey string) (*MapsGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &MapsGeocoder{client: client}, nil
}

func (g *MapsGeocoder) Geocode(ctx context.Context, address string) (lng, lat float64, formatted string, err error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, "", err
	}
	if len(results) == 0 {
		return 0, 0, "", fmt.Errorf("no results found for address")
	}
	loc := results[0].Geometry.Location
	return loc.Lng, loc.Lat, results[0].FormattedAddress, nil
}
