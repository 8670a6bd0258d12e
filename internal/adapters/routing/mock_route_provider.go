package routing

import (
	"context"
	"fuel-route-service/internal/domain"
)

// MockRouteProvider returns a fixed waypoint sequence regardless of the
// requested endpoints. Calls are counted so tests can assert the cache
// short-circuits the provider.
type MockRouteProvider struct {
	Route []domain.Coordinate
	Err   error
	Calls int
}

func (m *MockRouteProvider) GetRoute(ctx context.Context, start, finish domain.Coordinate) ([]domain.Coordinate, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Route, nil
}
