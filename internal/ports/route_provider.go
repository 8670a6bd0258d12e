package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Port: a boundary for obtaining driving route geometry between two
// coordinates from an external routing engine.
type RouteProvider interface {
	// Return the ordered waypoint sequence of one selected route.
	GetRoute(ctx context.Context, start, finish domain.Coordinate) ([]domain.Coordinate, error)
}
