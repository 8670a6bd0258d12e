package domain

// ProjectedStop is a station mapped onto a position along the route,
// together with the round-trip detour required to visit it.
type ProjectedStop struct {
	StationID       string
	Name            string
	RouteMile       float64
	Price           float64
	Lat             float64
	Lon             float64
	DistanceToRoute float64
	DetourMiles     float64
	OnRoute         bool
}

// FuelStop records one purchase decision made by the optimizer.
// Gallons is always positive; DetourMiles is the detour actually
// consumed to reach the station (zero for on-route stops).
type FuelStop struct {
	StationID   string  `json:"station_id"`
	Name        string  `json:"name"`
	RouteMile   float64 `json:"route_mile"`
	Price       float64 `json:"price"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DetourMiles float64 `json:"detour_miles"`
	Gallons     float64 `json:"gallons"`
	Cost        float64 `json:"cost"`
	BuyReason   string  `json:"buy_reason"`
}

// RoutePlan is the final planning artifact returned to the caller and
// stored in the cache. It is immutable once assembled.
type RoutePlan struct {
	TotalDistanceMiles float64    `json:"distance"`
	Stops              []FuelStop `json:"stops"`
	TotalFuelCost      float64    `json:"total_fuel_cost"`
	MapURL             string     `json:"map_url"`
}
