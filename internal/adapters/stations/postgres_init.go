package stations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the fuel_stations table and its lookup indexes.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS fuel_stations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		price_per_gallon NUMERIC(5, 3) NOT NULL,
		state TEXT
	);
	`

	createLatLonIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_fuel_stations_lat_lon
	ON fuel_stations(latitude, longitude);
	`

	createPriceIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_fuel_stations_price
	ON fuel_stations(price_per_gallon);
	`

	statements := []string{
		createStationsQuery,
		createLatLonIndexQuery,
		createPriceIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedFromCSV loads the catalogue CSV and upserts every station row.
func SeedFromCSV(ctx context.Context, db *sql.DB, csvPath string) error {
	source := NewCSVStationSource(csvPath)
	records, err := source.LoadStations(ctx)
	if err != nil {
		return fmt.Errorf("seed stations: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO fuel_stations (id, name, latitude, longitude, price_per_gallon)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		price_per_gallon = EXCLUDED.price_per_gallon;
	`)
	if err != nil {
		return fmt.Errorf("seed stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Name, rec.Lat, rec.Lon, rec.PricePerGallon); err != nil {
			return fmt.Errorf("seed stations: insert id=%q: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stations: commit tx: %w", err)
	}

	return nil
}
