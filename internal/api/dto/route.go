package dto

type CoordinateRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type RouteRequest struct {
	Start  CoordinateRequest `json:"start"`
	Finish CoordinateRequest `json:"finish"`
}

type StopResponse struct {
	StationID   string  `json:"station_id"`
	Name        string  `json:"name"`
	RouteMile   float64 `json:"route_mile"`
	Price       float64 `json:"price"`
	Gallons     float64 `json:"gallons"`
	Cost        float64 `json:"cost"`
	DetourMiles float64 `json:"detour_miles"`
	BuyReason   string  `json:"buy_reason"`
}

type RouteResponse struct {
	Distance      float64        `json:"distance"`
	Stops         []StopResponse `json:"stops"`
	TotalFuelCost float64        `json:"total_fuel_cost"`
	MapURL        string         `json:"map_url"`
}
