// README: Google Directions client used for trip distance and duration.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"googlemaps.github.io/maps"

	"cabsync/internal/types"
)

var ErrNoRoute = errors.New("no route found")

const (
	SourceDirections   = "directions"
	SourceStraightLine = "straight_line"
)

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// TripEstimate returns the driving distance and duration of the first route
// between two points.
func (s *RouteService) TripEstimate(ctx context.Context, origin, destination types.Point) (types.Trip, error) {
	r := &maps.DirectionsRequest{
		Origin:      latLng(origin),
		Destination: latLng(destination),
		Mode:        maps.TravelModeDriving,
		Region:      "in",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return types.Trip{}, fmt.Errorf("maps api error: %w", err)
	}
	return tripFromRoutes(routes)
}

func tripFromRoutes(routes []maps.Route) (types.Trip, error) {
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return types.Trip{}, ErrNoRoute
	}
	trip := types.Trip{Source: SourceDirections}
	for _, leg := range routes[0].Legs {
		trip.DistanceMeters += leg.Distance.Meters
		trip.Duration += leg.Duration
	}
	trip.DurationSec = int(trip.Duration.Seconds())
	if len(routes[0].Legs) == 1 {
		trip.DistanceText = routes[0].Legs[0].Distance.HumanReadable
	} else {
		trip.DistanceText = kmText(trip.DistanceMeters)
	}
	return trip, nil
}

func latLng(p types.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', 7, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 7, 64)
}

func kmText(meters int) string {
	return strconv.FormatFloat(float64(meters)/1000, 'f', 1, 64) + " km"
}
