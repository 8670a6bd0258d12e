package geo

import (
	"fuel-route-service/internal/domain"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used for great-circle math.
const EarthRadiusMiles = 3958.8

// MilesPerDegree approximates one degree of latitude, used to convert a
// mile buffer into a bounding-box expansion.
const MilesPerDegree = 69.0

// HaversineMiles returns the great-circle distance between two points.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return EarthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceProfile returns cumulative great-circle distances along the
// route: entry i is the distance from the first waypoint to waypoint i.
// The result has the same length as the input, starts at 0, and is
// non-decreasing.
func DistanceProfile(route []domain.Coordinate) ([]float64, error) {
	if len(route) < 2 {
		return nil, domain.ErrInvalidRouteGeometry
	}

	profile := make([]float64, len(route))
	for i := 1; i < len(route); i++ {
		prev, cur := route[i-1], route[i]
		profile[i] = profile[i-1] + HaversineMiles(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
	}

	return profile, nil
}

// BoundingBox is a latitude/longitude rectangle.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// RouteBoundingBox computes the box enclosing the route, expanded by
// bufferMiles on every side. It is a cheap corridor pre-filter applied
// before any per-waypoint distance math.
func RouteBoundingBox(route []domain.Coordinate, bufferMiles float64) BoundingBox {
	box := BoundingBox{
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
		MinLon: math.Inf(1), MaxLon: math.Inf(-1),
	}
	for _, c := range route {
		box.MinLat = math.Min(box.MinLat, c.Lat)
		box.MaxLat = math.Max(box.MaxLat, c.Lat)
		box.MinLon = math.Min(box.MinLon, c.Lon)
		box.MaxLon = math.Max(box.MaxLon, c.Lon)
	}

	buffer := bufferMiles / MilesPerDegree
	box.MinLat -= buffer
	box.MaxLat += buffer
	box.MinLon -= buffer
	box.MaxLon += buffer

	return box
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}
