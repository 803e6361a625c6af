// README: Rapido ride quote records and request/response shapes.
package rapido

import (
	"strconv"
	"time"

	"cabsync/internal/types"
	"cabsync/internal/wire"
)

const ProviderID = "rapido"

type VehicleClass string

const (
	VehicleBike    VehicleClass = "bike"
	VehicleAuto    VehicleClass = "auto"
	VehicleCar     VehicleClass = "car"
	VehicleUnknown VehicleClass = "unknown"
)

// RideQuote is one ride option recovered from a fare-estimate payload.
type RideQuote struct {
	RideTypeID   string       `json:"ride_type_id"`
	DisplayName  string       `json:"display_name"`
	PriceMin     float64      `json:"price_min"`
	PriceMax     float64      `json:"price_max"`
	VehicleClass VehicleClass `json:"vehicle_class"`
}

// PriceText formats the price range: "₹145", "₹120-150", or "N/A" when the
// prices could not be recovered.
func (q RideQuote) PriceText() string {
	if q.PriceMin == 0 && q.PriceMax == 0 {
		return "N/A"
	}
	lo := types.Money{Amount: q.PriceMin, Currency: types.CurrencyINR}
	if q.PriceMin == q.PriceMax {
		return lo.String()
	}
	return lo.String() + "-" + strconv.FormatFloat(q.PriceMax, 'f', 0, 64)
}

// Place is a pickup or drop location as the fare-estimate API expects it.
type Place struct {
	types.Point
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (p Place) displayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Address
}

type FareRequest struct {
	Pickup  Place
	Dropoff Place
	// VehicleType keeps only quotes of that class when set.
	VehicleType string
}

type QuoteResult struct {
	Rides     []RideQuote
	Trip      *types.Trip
	CacheKey  string
	QueriedAt time.Time
	Cached    bool
}

type DecodeResult struct {
	Rides []RideQuote
	Scan  wire.Report
	// Raw is the reconstituted wire buffer.
	Raw []byte
}

// Payload is a raw buffer kept for offline diagnosis.
type Payload struct {
	ID         int64
	CacheKey   string
	PayloadHex string
	Length     int
	Consumed   int
	StopReason wire.StopReason
	RideCount  int
	CreatedAt  time.Time
}
