// README: Known Rapido ride-type identifiers and vehicle classification.
package rapido

import (
	"strconv"
	"strings"
)

// Ride-type identifiers observed in fare-estimate responses.
const (
	RideTypeAuto       = "5bd6c6e2e79cc313a94728d0"
	RideTypeBike       = "5e8a15fe3c89412b94731fbb"
	RideTypeCabEconomy = "64253ccfc5df55a274d3565e"
	RideTypeCab        = "64253cb9c8ed60001752e182"
	RideTypePremium    = "6759719ee6bfd0c631925d99"
)

func knownDisplayName(rideTypeID string) (string, bool) {
	switch rideTypeID {
	case RideTypeAuto:
		return "Rapido Auto", true
	case RideTypeBike:
		return "Rapido Bike", true
	case RideTypeCabEconomy:
		return "Rapido Cab Economy", true
	case RideTypeCab:
		return "Rapido Cab", true
	case RideTypePremium:
		return "Rapido Premium", true
	}
	return "", false
}

// DisplayName resolves a ride-type identifier; unknown ones are named after
// their 0-based position in the ride list.
func DisplayName(rideTypeID string, index int) string {
	if name, ok := knownDisplayName(rideTypeID); ok {
		return name
	}
	return "Ride " + strconv.Itoa(index+1)
}

func ClassifyVehicle(displayName string) VehicleClass {
	name := strings.ToLower(displayName)
	switch {
	case strings.Contains(name, "bike"):
		return VehicleBike
	case strings.Contains(name, "auto"):
		return VehicleAuto
	case strings.Contains(name, "cab"), strings.Contains(name, "economy"), strings.Contains(name, "premium"):
		return VehicleCar
	}
	return VehicleUnknown
}
