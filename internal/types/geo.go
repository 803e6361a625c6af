// README: Shared geographic value objects.
package types

import "time"

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Trip is a routed estimate between two points.
type Trip struct {
	DistanceMeters int           `json:"distance_meters"`
	DistanceText   string        `json:"distance_text"`
	Duration       time.Duration `json:"-"`
	DurationSec    int           `json:"duration_sec"`
	// Source is "directions" for routed estimates, "straight_line" otherwise.
	Source string `json:"source"`
}
