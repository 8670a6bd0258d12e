package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Port: a boundary for loading the full station catalogue from a
// persisted dataset (CSV export, relational table, ...).
type StationSource interface {
	LoadStations(ctx context.Context) ([]domain.StationRecord, error)
}
