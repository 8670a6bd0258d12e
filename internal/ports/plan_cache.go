package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Port: a key/value store with TTL holding completed route plans.
// Implementations report failures to the caller; the pipeline treats
// them as misses (read) or drops them (write), never as request errors.
type PlanCache interface {
	// Get returns the cached plan for key, or found=false on a miss.
	Get(ctx context.Context, key string) (plan *domain.RoutePlan, found bool, err error)
	// Set stores the plan under key, overwriting any previous value.
	Set(ctx context.Context, key string, plan *domain.RoutePlan) error
}
