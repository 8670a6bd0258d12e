package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Port: a boundary for producing a viewable map artifact from a route
// and its purchase stops. The returned reference is opaque to the core
// (a path or URL).
type MapRenderer interface {
	RenderMap(ctx context.Context, route []domain.Coordinate, stops []domain.FuelStop, name string) (string, error)
}
