package services

// Config carries the planning constants. Defaults match the vehicle
// profile the service has always assumed.
type Config struct {
	// MaxRangeMiles is the tank capacity expressed as range; the fuel
	// level can never exceed it.
	MaxRangeMiles float64
	// MilesPerGallon converts purchased gallons to range.
	MilesPerGallon float64
	// MaxDetourMiles is the largest round-trip detour worth considering;
	// stations beyond it are dropped during projection.
	MaxDetourMiles float64
	// CorridorMiles buffers the route bounding box used to pre-filter
	// the station catalogue.
	CorridorMiles float64
	// OnRouteMiles is the distance under which a station counts as
	// sitting on the route itself (no detour needed).
	OnRouteMiles float64
}

func DefaultConfig() Config {
	return Config{
		MaxRangeMiles:  500,
		MilesPerGallon: 10,
		MaxDetourMiles: 10,
		CorridorMiles:  50,
		OnRouteMiles:   0.1,
	}
}
