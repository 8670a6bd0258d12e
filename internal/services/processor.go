package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"log"
)

// planSchemaVersion tags the cache key shape; bump it when the
// serialized RoutePlan changes so stale entries stop matching.
const planSchemaVersion = "1"

// FailureKind classifies which part of the pipeline failed, so callers
// can branch without parsing messages.
type FailureKind string

const (
	FailureStations      FailureKind = "station_catalogue"
	FailureRouteGeometry FailureKind = "route_geometry"
	FailureInfeasible    FailureKind = "infeasible_route"
	FailureRendering     FailureKind = "map_rendering"
)

// PlanningError wraps a pipeline failure while preserving the original
// cause, so errors.As still reaches the underlying error.
type PlanningError struct {
	Kind FailureKind
	Err  error
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("plan route: %s: %v", e.Kind, e.Err)
}

func (e *PlanningError) Unwrap() error { return e.Err }

// Processor composes the full planning pipeline for one request:
// cache lookup, route geometry, distance profile, station projection,
// fuel optimization, map rendering, cache write.
type Processor struct {
	repo     *StationRepository
	routes   ports.RouteProvider
	renderer ports.MapRenderer
	cache    ports.PlanCache
	cfg      Config
}

// NewProcessor wires the pipeline. cache may be nil, in which case the
// pipeline runs uncached; correctness does not depend on it.
func NewProcessor(
	repo *StationRepository,
	routes ports.RouteProvider,
	renderer ports.MapRenderer,
	cache ports.PlanCache,
	cfg Config,
) *Processor {
	return &Processor{
		repo:     repo,
		routes:   routes,
		renderer: renderer,
		cache:    cache,
		cfg:      cfg,
	}
}

// PlanRoute produces a RoutePlan for the given endpoints. On a cache
// hit no external calls are made. All failures surface as
// *PlanningError; no partial plan is ever returned.
func (p *Processor) PlanRoute(ctx context.Context, start, finish domain.Coordinate) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "processor.PlanRoute")(&err)

	fingerprint, err := p.repo.Fingerprint(ctx)
	if err != nil {
		return nil, &PlanningError{Kind: FailureStations, Err: err}
	}

	key := cacheKey(start, finish, fingerprint)
	if plan, ok := p.cachedPlan(ctx, key); ok {
		log.Printf("returning cached plan key=%s", key)
		return plan, nil
	}

	route, err := p.routes.GetRoute(ctx, start, finish)
	if err != nil {
		return nil, &PlanningError{Kind: FailureRouteGeometry, Err: err}
	}

	profile, err := geo.DistanceProfile(route)
	if err != nil {
		return nil, &PlanningError{Kind: FailureRouteGeometry, Err: err}
	}
	totalDistance := profile[len(profile)-1]

	stations, err := p.repo.Stations(ctx)
	if err != nil {
		return nil, &PlanningError{Kind: FailureStations, Err: err}
	}

	projected := ProjectStations(route, profile, stations, p.cfg)

	stops, totalCost, err := OptimizeFuelStops(totalDistance, projected, p.cfg)
	if err != nil {
		return nil, &PlanningError{Kind: FailureInfeasible, Err: err}
	}

	artifactName := fmt.Sprintf("%g_%g_%g_%g", start.Lon, start.Lat, finish.Lon, finish.Lat)
	mapURL, err := p.renderer.RenderMap(ctx, route, stops, artifactName)
	if err != nil {
		return nil, &PlanningError{Kind: FailureRendering, Err: err}
	}

	plan := &domain.RoutePlan{
		TotalDistanceMiles: roundTo(totalDistance, 1),
		Stops:              stops,
		TotalFuelCost:      totalCost,
		MapURL:             mapURL,
	}

	// Best-effort write: a racing or failed write never fails the request.
	if p.cache != nil {
		if err := p.cache.Set(ctx, key, plan); err != nil {
			log.Printf("plan cache write failed key=%s err=%v", key, err)
		}
	}

	return plan, nil
}

// cachedPlan reads the cache, logging and treating any error as a miss.
func (p *Processor) cachedPlan(ctx context.Context, key string) (*domain.RoutePlan, bool) {
	if p.cache == nil {
		return nil, false
	}

	plan, found, err := p.cache.Get(ctx, key)
	if err != nil {
		log.Printf("plan cache read failed key=%s err=%v", key, err)
		return nil, false
	}

	return plan, found
}

// cacheKey derives a content-addressed key from the endpoints, the
// station dataset fingerprint, and the schema version.
func cacheKey(start, finish domain.Coordinate, stationsFingerprint string) string {
	payload, _ := json.Marshal(struct {
		Start        string `json:"start"`
		Finish       string `json:"finish"`
		StationsHash string `json:"stations_hash"`
		Version      string `json:"version"`
	}{
		Start:        start.Key(),
		Finish:       finish.Key(),
		StationsHash: stationsFingerprint,
		Version:      planSchemaVersion,
	})

	sum := sha256.Sum256(payload)
	return "route:" + hex.EncodeToString(sum[:])
}
