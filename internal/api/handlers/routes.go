package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/services"
)

// Routes handles POST /routes: plan the cheapest fuel purchases along
// the driving route between two coordinates.
type Routes struct {
	Processor *services.Processor
}

func NewRoutes(p *services.Processor) *Routes {
	return &Routes{Processor: p}
}

func (h *Routes) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "request body must contain a single JSON object")
		return
	}

	start, err := coordinate(req.Start)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "start: "+err.Error())
		return
	}
	finish, err := coordinate(req.Finish)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "finish: "+err.Error())
		return
	}

	plan, err := h.Processor.PlanRoute(r.Context(), start, finish)
	if err != nil {
		status := http.StatusInternalServerError
		var perr *services.PlanningError
		if errors.As(err, &perr) {
			switch perr.Kind {
			case services.FailureInfeasible:
				status = http.StatusUnprocessableEntity
			case services.FailureRouteGeometry, services.FailureRendering:
				status = http.StatusBadGateway
			}
		}
		log.Printf("plan route failed start=%s finish=%s err=%v", start.Key(), finish.Key(), err)
		writeError(w, r, status, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(plan))
}

var (
	errMissingCoordinate = errors.New("lat and lon are required")
	errLatOutOfRange     = errors.New("lat must be between -90 and 90")
	errLonOutOfRange     = errors.New("lon must be between -180 and 180")
)

func coordinate(c dto.CoordinateRequest) (domain.Coordinate, error) {
	if c.Lat == nil || c.Lon == nil {
		return domain.Coordinate{}, errMissingCoordinate
	}
	if *c.Lat < -90 || *c.Lat > 90 {
		return domain.Coordinate{}, errLatOutOfRange
	}
	if *c.Lon < -180 || *c.Lon > 180 {
		return domain.Coordinate{}, errLonOutOfRange
	}
	return domain.Coordinate{Lat: *c.Lat, Lon: *c.Lon}, nil
}

func toRouteResponse(plan *domain.RoutePlan) dto.RouteResponse {
	stops := make([]dto.StopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.StopResponse{
			StationID:   s.StationID,
			Name:        s.Name,
			RouteMile:   s.RouteMile,
			Price:       s.Price,
			Gallons:     s.Gallons,
			Cost:        s.Cost,
			DetourMiles: s.DetourMiles,
			BuyReason:   s.BuyReason,
		})
	}
	return dto.RouteResponse{
		Distance:      plan.TotalDistanceMiles,
		Stops:         stops,
		TotalFuelCost: plan.TotalFuelCost,
		MapURL:        plan.MapURL,
	}
}
