// README: Great-circle trip estimate used when no Directions API key is configured.
package maps

import (
	"context"
	"math"
	"time"

	"cabsync/internal/types"
)

const (
	earthRadiusKm = 6371.0
	// minTripKm and minTripTime floor very short hops.
	minTripKm   = 0.75
	minTripTime = 10 * time.Minute
	avgSpeedKmh = 30.0
)

// StraightLine estimates trips from the great-circle distance at an average
// city speed. It never fails.
type StraightLine struct{}

func (StraightLine) TripEstimate(_ context.Context, origin, destination types.Point) (types.Trip, error) {
	km := math.Max(haversineKm(origin, destination), minTripKm)
	dur := time.Duration(km / avgSpeedKmh * float64(time.Hour))
	if dur < minTripTime {
		dur = minTripTime
	}
	meters := int(km * 1000)
	return types.Trip{
		DistanceMeters: meters,
		DistanceText:   kmText(meters),
		Duration:       dur,
		DurationSec:    int(dur.Seconds()),
		Source:         SourceStraightLine,
	}, nil
}

// haversineKm returns the great-circle distance in kilometres.
func haversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)
	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
