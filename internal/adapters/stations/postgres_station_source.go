package stations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
)

// PostgresStationSource reads the station catalogue from the
// fuel_stations table.
type PostgresStationSource struct {
	DB *sql.DB
}

func NewPostgresStationSource(db *sql.DB) *PostgresStationSource {
	return &PostgresStationSource{DB: db}
}

func (s *PostgresStationSource) LoadStations(ctx context.Context) ([]domain.StationRecord, error) {
	if s.DB == nil {
		return nil, errors.New("postgres station source: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		latitude,
		longitude,
		price_per_gallon
	FROM fuel_stations
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load stations: query fuel_stations table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.StationRecord, 0, 256)
	for rows.Next() {
		var rec domain.StationRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Lat, &rec.Lon, &rec.PricePerGallon); err != nil {
			return nil, fmt.Errorf("load stations: scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load stations: row iteration: %w", err)
	}

	return records, nil
}
