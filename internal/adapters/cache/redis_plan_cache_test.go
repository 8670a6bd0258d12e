package cache

import (
	"context"
	"fuel-route-service/internal/domain"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisPlanCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisPlanCache(client), mr
}

func TestPlanCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	plan := &domain.RoutePlan{
		TotalDistanceMiles: 1000.0,
		TotalFuelCost:      169.02,
		MapURL:             "maps/route_map_test.html",
		Stops: []domain.FuelStop{
			{
				StationID:   "42",
				Name:        "Station B",
				RouteMile:   400,
				Price:       3.40,
				DetourMiles: 5,
				Gallons:     30.3,
				Cost:        103.02,
				BuyReason:   "to reach cheaper station at D",
			},
		},
	}

	if err := c.Set(ctx, "route:abc", plan); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found, err := c.Get(ctx, "route:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}

	if got.TotalFuelCost != plan.TotalFuelCost {
		t.Errorf("TotalFuelCost = %v, want %v", got.TotalFuelCost, plan.TotalFuelCost)
	}
	if got.MapURL != plan.MapURL {
		t.Errorf("MapURL = %q, want %q", got.MapURL, plan.MapURL)
	}
	if len(got.Stops) != 1 || got.Stops[0] != plan.Stops[0] {
		t.Errorf("stops = %+v, want %+v", got.Stops, plan.Stops)
	}

	if ttl := mr.TTL("route:abc"); ttl != PlanTTL {
		t.Errorf("ttl = %v, want %v", ttl, PlanTTL)
	}
}

func TestPlanCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	plan, found, err := c.Get(context.Background(), "route:missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found || plan != nil {
		t.Fatalf("expected miss, got found=%v plan=%+v", found, plan)
	}
}

func TestPlanCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "route:ttl", &domain.RoutePlan{TotalDistanceMiles: 1}); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(PlanTTL + 1)

	_, found, err := c.Get(ctx, "route:ttl")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("expected entry to expire")
	}
}

func TestPlanCacheOverwrite(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "route:k", &domain.RoutePlan{TotalFuelCost: 1}); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := c.Set(ctx, "route:k", &domain.RoutePlan{TotalFuelCost: 2}); err != nil {
		t.Fatalf("second set: %v", err)
	}

	got, found, err := c.Get(ctx, "route:k")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.TotalFuelCost != 2 {
		t.Errorf("TotalFuelCost = %v, want 2 (last write wins)", got.TotalFuelCost)
	}
}
