package services

import (
	"context"
	"errors"
	"testing"

	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/domain"
)

// memCache is an in-process PlanCache for tests.
type memCache struct {
	plans map[string]*domain.RoutePlan
	err   error
}

func newMemCache() *memCache {
	return &memCache{plans: map[string]*domain.RoutePlan{}}
}

func (c *memCache) Get(ctx context.Context, key string) (*domain.RoutePlan, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	plan, ok := c.plans[key]
	return plan, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, plan *domain.RoutePlan) error {
	if c.err != nil {
		return c.err
	}
	c.plans[key] = plan
	return nil
}

type fakeRenderer struct {
	path  string
	err   error
	calls int
}

func (r *fakeRenderer) RenderMap(ctx context.Context, route []domain.Coordinate, stops []domain.FuelStop, name string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.path, nil
}

func shortRoute() []domain.Coordinate {
	return []domain.Coordinate{{Lat: 40, Lon: -75}, {Lat: 41, Lon: -75}}
}

func TestProcessorPlansShortRoute(t *testing.T) {
	provider := &routing.MockRouteProvider{Route: shortRoute()}
	renderer := &fakeRenderer{path: "data/maps/route_map_test.html"}
	repo := NewStationRepository(&stubSource{records: nil})

	p := NewProcessor(repo, provider, renderer, newMemCache(), DefaultConfig())

	plan, err := p.PlanRoute(context.Background(), shortRoute()[0], shortRoute()[1])
	if err != nil {
		t.Fatalf("PlanRoute returned error: %v", err)
	}

	if plan.TotalDistanceMiles <= 0 {
		t.Errorf("distance: got %.1f, want > 0", plan.TotalDistanceMiles)
	}
	if len(plan.Stops) != 0 {
		t.Errorf("expected no stops within initial range, got %+v", plan.Stops)
	}
	if plan.TotalFuelCost != 0 {
		t.Errorf("total cost: got %.2f, want 0", plan.TotalFuelCost)
	}
	if plan.MapURL != renderer.path {
		t.Errorf("map url: got %q, want %q", plan.MapURL, renderer.path)
	}
}

func TestProcessorCacheHitSkipsProvider(t *testing.T) {
	provider := &routing.MockRouteProvider{Route: shortRoute()}
	renderer := &fakeRenderer{path: "map.html"}
	repo := NewStationRepository(&stubSource{records: testRecords()})
	cache := newMemCache()

	p := NewProcessor(repo, provider, renderer, cache, DefaultConfig())
	start, finish := shortRoute()[0], shortRoute()[1]

	first, err := p.PlanRoute(context.Background(), start, finish)
	if err != nil {
		t.Fatalf("first PlanRoute returned error: %v", err)
	}

	second, err := p.PlanRoute(context.Background(), start, finish)
	if err != nil {
		t.Fatalf("second PlanRoute returned error: %v", err)
	}

	if provider.Calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.Calls)
	}
	if renderer.calls != 1 {
		t.Errorf("renderer called %d times, want 1", renderer.calls)
	}
	if second.MapURL != first.MapURL || second.TotalDistanceMiles != first.TotalDistanceMiles {
		t.Errorf("cached plan differs: first %+v, second %+v", first, second)
	}
}

func TestProcessorCacheFailureIsNotFatal(t *testing.T) {
	provider := &routing.MockRouteProvider{Route: shortRoute()}
	cache := newMemCache()
	cache.err = errors.New("redis down")
	repo := NewStationRepository(&stubSource{records: nil})

	p := NewProcessor(repo, provider, &fakeRenderer{path: "map.html"}, cache, DefaultConfig())

	if _, err := p.PlanRoute(context.Background(), shortRoute()[0], shortRoute()[1]); err != nil {
		t.Fatalf("cache failure should not fail the request: %v", err)
	}
}

func TestProcessorFailureKinds(t *testing.T) {
	start := domain.Coordinate{Lat: 35, Lon: -100}
	finish := domain.Coordinate{Lat: 45, Lon: -100}
	longRoute := []domain.Coordinate{start, finish}

	tests := []struct {
		name     string
		source   *stubSource
		provider *routing.MockRouteProvider
		renderer *fakeRenderer
		want     FailureKind
	}{
		{
			name:     "station source failure",
			source:   &stubSource{err: errors.New("csv missing")},
			provider: &routing.MockRouteProvider{Route: longRoute},
			renderer: &fakeRenderer{path: "map.html"},
			want:     FailureStations,
		},
		{
			name:     "route provider failure",
			source:   &stubSource{},
			provider: &routing.MockRouteProvider{Err: errors.New("osrm unavailable")},
			renderer: &fakeRenderer{path: "map.html"},
			want:     FailureRouteGeometry,
		},
		{
			name:     "degenerate geometry",
			source:   &stubSource{},
			provider: &routing.MockRouteProvider{Route: []domain.Coordinate{start}},
			renderer: &fakeRenderer{path: "map.html"},
			want:     FailureRouteGeometry,
		},
		{
			name:     "infeasible route",
			source:   &stubSource{},
			provider: &routing.MockRouteProvider{Route: longRoute},
			renderer: &fakeRenderer{path: "map.html"},
			want:     FailureInfeasible,
		},
		{
			name:     "renderer failure",
			source:   &stubSource{},
			provider: &routing.MockRouteProvider{Route: shortRoute()},
			renderer: &fakeRenderer{err: errors.New("disk full")},
			want:     FailureRendering,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProcessor(NewStationRepository(tc.source), tc.provider, tc.renderer, nil, DefaultConfig())

			_, err := p.PlanRoute(context.Background(), start, finish)
			if err == nil {
				t.Fatal("expected an error")
			}

			var perr *PlanningError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *PlanningError, got %T: %v", err, err)
			}
			if perr.Kind != tc.want {
				t.Errorf("kind: got %q, want %q", perr.Kind, tc.want)
			}

			if tc.want == FailureInfeasible {
				var oof *domain.OutOfFuelError
				if !errors.As(err, &oof) {
					t.Errorf("infeasible error should unwrap to *domain.OutOfFuelError, got %v", err)
				}
			}
		})
	}
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	start := domain.Coordinate{Lat: 40, Lon: -75}
	finish := domain.Coordinate{Lat: 41, Lon: -75}

	base := cacheKey(start, finish, "fp1")
	if base != cacheKey(start, finish, "fp1") {
		t.Error("cache key is not deterministic")
	}
	if base == cacheKey(start, finish, "fp2") {
		t.Error("cache key ignores the station fingerprint")
	}
	if base == cacheKey(finish, start, "fp1") {
		t.Error("cache key ignores endpoint order")
	}
}
