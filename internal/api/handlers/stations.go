package handlers

import (
	"log"
	"net/http"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/services"
)

// Stations handles GET /stations: the current station catalogue as the
// planner sees it.
type Stations struct {
	Repo *services.StationRepository
}

func NewStations(repo *services.StationRepository) *Stations {
	return &Stations{Repo: repo}
}

func (h *Stations) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := h.Repo.Stations(r.Context())
	if err != nil {
		log.Printf("list stations failed err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "failed to load stations")
		return
	}

	stations := make([]dto.StationResponse, 0, len(records))
	for _, rec := range records {
		stations = append(stations, dto.StationResponse{
			ID:             rec.ID,
			Name:           rec.Name,
			Lat:            rec.Lat,
			Lon:            rec.Lon,
			PricePerGallon: rec.PricePerGallon,
		})
	}

	writeJSON(w, r, http.StatusOK, dto.ListStationsResponse{
		Count:    len(stations),
		Stations: stations,
	})
}
