package main

import (
	"context"
	"log"
	"os"
	"strings"

	"fuel-route-service/internal/adapters/stations"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	csvPath := config.Get("STATIONS_CSV", "data/fuel-prices.csv")

	log.Println("Initializing database schema...")
	if err := stations.InitSchema(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding stations from %s...", csvPath)
	if err := stations.SeedFromCSV(context.Background(), pg, csvPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
