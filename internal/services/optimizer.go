package services

import (
	"fmt"
	"fuel-route-service/internal/domain"
	"math"
	"slices"
)

// rangeEpsilon absorbs floating-point error in all fuel and range
// comparisons. Every tolerance check in the optimizer goes through it.
const rangeEpsilon = 1e-6

// DestinationName labels the virtual stop appended at the end of the
// route. It is a lookahead target only, never a purchase candidate.
const DestinationName = "DESTINATION"

// fuelState is the simulation state threaded through the purchase loop.
// pos includes detour miles already consumed, so fuel and pos stay
// consistent when the vehicle leaves and rejoins the route.
type fuelState struct {
	fuel float64
	pos  float64
	cost float64
}

// OptimizeFuelStops decides where to buy fuel and how much, minimizing
// total spend while never running the tank dry.
//
// Greedy with lookahead: at each station, scan ahead (including a
// virtual zero-price destination) while the distance plus detour to
// reach the candidate fits within a full tank. Buying just enough to
// reach a strictly cheaper station wins; otherwise fill up, reserving
// headroom for the current station's own detour.
//
// The only error is *domain.OutOfFuelError: the route is infeasible
// from the current state with the given stations.
func OptimizeFuelStops(
	totalDistance float64,
	stations []domain.ProjectedStop,
	cfg Config,
) ([]domain.FuelStop, float64, error) {
	ordered := slices.Clone(stations)
	slices.SortFunc(ordered, func(a, b domain.ProjectedStop) int {
		if a.RouteMile < b.RouteMile {
			return -1
		}
		if a.RouteMile > b.RouteMile {
			return 1
		}
		return 0
	})

	ordered = append(ordered, domain.ProjectedStop{
		Name:      DestinationName,
		RouteMile: totalDistance,
		OnRoute:   true,
	})

	state := fuelState{fuel: cfg.MaxRangeMiles}
	stops := []domain.FuelStop{}

	for i := 0; i < len(ordered)-1; i++ {
		station := ordered[i]

		state.fuel -= station.RouteMile - state.pos
		state.pos = station.RouteMile

		if state.fuel < -rangeEpsilon {
			return nil, 0, &domain.OutOfFuelError{Station: station.Name, RouteMile: station.RouteMile}
		}
		state.fuel = math.Max(0, state.fuel)

		detourNeeded := 0.0
		if !station.OnRoute {
			detourNeeded = station.DetourMiles
		}

		// The detour itself must be affordable before anything else.
		if detourNeeded > state.fuel+rangeEpsilon {
			continue
		}

		gallons, reason := purchaseAt(station, detourNeeded, state, ordered[i+1:], cfg)
		if gallons <= rangeEpsilon {
			continue
		}

		cost := gallons * station.Price
		if detourNeeded > 0 {
			state.fuel -= detourNeeded
			state.pos += detourNeeded
		}
		state.fuel += gallons * cfg.MilesPerGallon
		state.cost += cost

		stops = append(stops, domain.FuelStop{
			StationID:   station.StationID,
			Name:        station.Name,
			RouteMile:   station.RouteMile,
			Price:       station.Price,
			Lat:         station.Lat,
			Lon:         station.Lon,
			DetourMiles: roundTo(detourNeeded, 2),
			Gallons:     roundTo(gallons, 4),
			Cost:        roundTo(cost, 2),
			BuyReason:   reason,
		})
	}

	// Final leg: the virtual destination is never a purchase stop, but
	// the route is only feasible if the tank covers the remaining miles.
	state.fuel -= totalDistance - state.pos
	if state.fuel < -rangeEpsilon {
		return nil, 0, &domain.OutOfFuelError{Station: DestinationName, RouteMile: totalDistance}
	}

	return stops, roundTo(state.cost, 2), nil
}

// purchaseAt runs the lookahead for one station and returns the gallons
// to buy there (possibly zero) and the reason for buying.
func purchaseAt(
	station domain.ProjectedStop,
	detourNeeded float64,
	state fuelState,
	ahead []domain.ProjectedStop,
	cfg Config,
) (float64, string) {
	for _, next := range ahead {
		nextDetour := 0.0
		if !next.OnRoute {
			nextDetour = next.DetourMiles
		}
		totalToNext := (next.RouteMile - state.pos) + nextDetour

		// Unreachable even on a full tank: stop scanning without a
		// match and fall through to the fill-tank branch.
		if totalToNext > cfg.MaxRangeMiles+rangeEpsilon {
			break
		}

		if next.Price < station.Price {
			requiredMiles := totalToNext
			// If the current detour is not yet covered by what is in
			// the tank, the purchase has to pay for it too.
			if detourNeeded > 0 && state.fuel < detourNeeded+rangeEpsilon {
				requiredMiles += detourNeeded
			}

			if need := requiredMiles - state.fuel; need > rangeEpsilon {
				return need / cfg.MilesPerGallon, fmt.Sprintf("to reach cheaper station at %s", next.Name)
			}
			return 0, ""
		}
	}

	// No cheaper station within reach: fill up, keeping headroom for
	// the detour still to be driven.
	maxUseful := cfg.MaxRangeMiles - detourNeeded
	if need := maxUseful - state.fuel; need > rangeEpsilon {
		return need / cfg.MilesPerGallon, "fill tank (no cheaper stations ahead)"
	}
	return 0, ""
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
