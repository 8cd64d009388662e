package services

import (
	"context"
	"errors"
	"os"
	"time"

	"googlemaps.github.io/maps"
)

var (
	mapsClient  *maps.Client
	ErrNoAPIKey = errors.New("GOOGLE_MAPS_API_KEY environment variable not set")
)

// InitMapsClient initializes the Google Maps client
func InitMapsClient() error {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		return ErrNoAPIKey
	}

	var err error
	mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return err
	}

	return nil
}

// ResolveMeetingLocation resolves a Place ID to a standardized display
// location for a meeting. Returns "name, formatted address" so occurrences
// carry a stable label regardless of how the location was typed.
func ResolveMeetingLocation(placeID string) (string, error) {
	if mapsClient == nil {
		if err := InitMapsClient(); err != nil {
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	request := &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskFormattedAddress,
			maps.PlaceDetailsFieldMaskName,
			maps.PlaceDetailsFieldMaskPlaceID,
		},
	}

	response, err := mapsClient.PlaceDetails(ctx, request)
	if err != nil {
		return "", err
	}

	if response.Name != "" && response.FormattedAddress != "" {
		return response.Name + ", " + response.FormattedAddress, nil
	}
	if response.FormattedAddress != "" {
		return response.FormattedAddress, nil
	}
	return response.Name, nil
}
