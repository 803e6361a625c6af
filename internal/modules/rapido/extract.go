// README: Ride record extraction from a scanned fare-estimate buffer.
package rapido

import (
	"google.golang.org/protobuf/encoding/protowire"

	"cabsync/internal/wire"
)

// Field layout recovered from captured responses; no schema is published.
const (
	fieldData  protowire.Number = 2 // top level: response body
	fieldRides protowire.Number = 4 // inside data: one entry per ride type

	fieldRideTypeID protowire.Number = 1
	fieldPriceMin   protowire.Number = 3
	fieldPriceMax   protowire.Number = 4
)

// Extract walks data(2) -> rides(4) and builds one quote per ride entry, in
// list order. A missing data or rides field means no rides are offered.
// Entries that are not embedded messages are skipped but still count toward
// the position used for fallback names.
func Extract(m *wire.Message) []RideQuote {
	data, ok := m.Nested(fieldData)
	if !ok {
		return []RideQuote{}
	}
	entries := data.NestedAll(fieldRides)
	rides := make([]RideQuote, 0, len(entries))
	for i, entry := range entries {
		if entry == nil {
			continue
		}
		rides = append(rides, extractRide(entry, i))
	}
	return rides
}

func extractRide(entry *wire.Message, index int) RideQuote {
	id, _ := entry.Text(fieldRideTypeID)
	name := DisplayName(id, index)

	lo, okLo := entry.Double(fieldPriceMin)
	hi, okHi := entry.Double(fieldPriceMax)
	if !okLo || !okHi {
		lo, hi = 0, 0
	}

	return RideQuote{
		RideTypeID:   id,
		DisplayName:  name,
		PriceMin:     lo,
		PriceMax:     hi,
		VehicleClass: ClassifyVehicle(name),
	}
}

// Decode runs the whole pipeline on a fare-estimate response body: unwrap the
// byte-array envelope, scan, extract. Only a malformed envelope is an error.
func Decode(body []byte) (DecodeResult, error) {
	raw, err := wire.UnwrapByteArray(body)
	if err != nil {
		return DecodeResult{}, err
	}
	return DecodeRaw(raw), nil
}

// DecodeRaw scans and extracts an already unwrapped buffer.
func DecodeRaw(raw []byte) DecodeResult {
	m, rep := wire.ScanReport(raw)
	return DecodeResult{Rides: Extract(m), Scan: rep, Raw: raw}
}
