package api

import (
	"net/http"

	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay
// unaware of concrete adapters.
func NewRouter(processor *services.Processor, repo *services.StationRepository) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/stations", handlers.NewStations(repo))
	mux.Handle("/routes", handlers.NewRoutes(processor))

	return loggingMiddleware(mux)
}
