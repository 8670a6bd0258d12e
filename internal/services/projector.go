package services

import (
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"slices"
)

// ProjectStations maps each catalogue station onto the route: the
// nearest waypoint's cumulative distance becomes the station's route
// mile, and twice the straight-line distance to that waypoint becomes
// its round-trip detour.
//
// Stations outside the corridor bounding box or beyond the maximum
// detour are dropped. The result is sorted by route mile ascending,
// which the optimizer requires.
//
// route and profile must have equal length (profile produced by
// geo.DistanceProfile from route). An empty catalogue yields an empty
// result, not an error.
func ProjectStations(
	route []domain.Coordinate,
	profile []float64,
	stations []domain.StationRecord,
	cfg Config,
) []domain.ProjectedStop {
	if len(route) == 0 || len(stations) == 0 {
		return []domain.ProjectedStop{}
	}

	box := geo.RouteBoundingBox(route, cfg.CorridorMiles)

	projected := make([]domain.ProjectedStop, 0, len(stations))
	for _, s := range stations {
		if !box.Contains(s.Lat, s.Lon) {
			continue
		}

		// Nearest waypoint by great-circle distance.
		minIdx := 0
		minDist := geo.HaversineMiles(s.Lat, s.Lon, route[0].Lat, route[0].Lon)
		for i := 1; i < len(route); i++ {
			d := geo.HaversineMiles(s.Lat, s.Lon, route[i].Lat, route[i].Lon)
			if d < minDist {
				minDist = d
				minIdx = i
			}
		}

		detour := 2 * minDist
		if detour > cfg.MaxDetourMiles {
			continue
		}

		projected = append(projected, domain.ProjectedStop{
			StationID:       s.ID,
			Name:            s.Name,
			RouteMile:       profile[minIdx],
			Price:           s.PricePerGallon,
			Lat:             s.Lat,
			Lon:             s.Lon,
			DistanceToRoute: minDist,
			DetourMiles:     detour,
			OnRoute:         minDist < cfg.OnRouteMiles,
		})
	}

	// Tie-breaker keeps ordering deterministic for stations sharing a
	// route mile.
	slices.SortFunc(projected, func(a, b domain.ProjectedStop) int {
		if a.RouteMile < b.RouteMile {
			return -1
		}
		if a.RouteMile > b.RouteMile {
			return 1
		}
		if a.StationID < b.StationID {
			return -1
		}
		if a.StationID > b.StationID {
			return 1
		}
		return 0
	})

	return projected
}
