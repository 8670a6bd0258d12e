package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// PlanTTL preserves the 60*60*60-second expiry the service has always
// shipped with. TODO: confirm with the service owners whether 60 hours
// was intended; it reads like a typo for 60 minutes or 24 hours.
const PlanTTL = 60 * 60 * 60 * time.Second

// RedisPlanCache stores serialized route plans in Redis with a TTL.
// Writes overwrite any previous value for the key; concurrent writers
// race benignly (last write wins). Failures are returned to the caller,
// which treats them as misses or drops them.
type RedisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlanCache(client *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{client: client, ttl: PlanTTL}
}

func (c *RedisPlanCache) Get(ctx context.Context, key string) (*domain.RoutePlan, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("plan cache get %q: %w", key, err)
	}

	var plan domain.RoutePlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, false, fmt.Errorf("plan cache decode %q: %w", key, err)
	}

	return &plan, true, nil
}

func (c *RedisPlanCache) Set(ctx context.Context, key string, plan *domain.RoutePlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("plan cache encode %q: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("plan cache set %q: %w", key, err)
	}

	return nil
}
