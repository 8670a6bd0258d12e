package main

import (
	"log"
	"net/http"
	"time"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/maps"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/adapters/stations"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or CSV stations, OSRM, Redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	csvPath := config.Get("STATIONS_CSV", "data/fuel-prices.csv")
	osrmBase := config.Get("OSRM_BASE_URL", routing.DefaultBaseURL)
	mapDir := config.Get("MAP_DIR", "data/maps")

	var source ports.StationSource
	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		source = stations.NewPostgresStationSource(pg)
		log.Println("Station source: postgres")
	} else {
		source = stations.NewCSVStationSource(csvPath)
		log.Printf("Station source: csv path=%s", csvPath)
	}

	var planCache ports.PlanCache
	if redisAddr := config.Get("REDIS_ADDR", ""); redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		planCache = cache.NewRedisPlanCache(client)
		log.Printf("Plan cache: redis addr=%s", redisAddr)
	} else {
		log.Println("Plan cache: disabled (REDIS_ADDR not set)")
	}

	repo := services.NewStationRepository(source)
	processor := services.NewProcessor(
		repo,
		routing.NewOSRMRouteProvider(osrmBase),
		maps.NewLeafletRenderer(mapDir),
		planCache,
		services.DefaultConfig(),
	)

	router := api.NewRouter(processor, repo)

	// Timeouts are tuned for cold-cache route planning (external OSRM latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
