package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRouteGeometry reports a degenerate waypoint sequence
// (fewer than two points).
var ErrInvalidRouteGeometry = errors.New("route geometry must contain at least two waypoints")

// OutOfFuelError reports that the route is infeasible: the tank runs
// dry before the named station or the destination can be reached.
type OutOfFuelError struct {
	Station   string
	RouteMile float64
}

func (e *OutOfFuelError) Error() string {
	return fmt.Sprintf("out of fuel before reaching %s (route mile %.1f)", e.Station, e.RouteMile)
}
