package stations

import (
	"context"
	"encoding/csv"
	"fmt"
	"fuel-route-service/internal/domain"
	"log"
	"os"
	"strconv"
	"strings"
)

// CSVStationSource loads the station catalogue from a CSV export.
//
// The header is matched case-insensitively and accepts the column
// names of both the enriched dataset (latitude/longitude/
// price_per_gallon) and the raw price export (Lat/Lon/Retail Price).
// Rows with missing or non-numeric coordinates or prices are skipped,
// not treated as errors.
type CSVStationSource struct {
	Path string
}

func NewCSVStationSource(path string) *CSVStationSource {
	return &CSVStationSource{Path: path}
}

// columnAliases maps each logical field to the header names it may
// appear under.
var columnAliases = map[string][]string{
	"id":    {"id", "opis truckstop id"},
	"name":  {"name", "truckstop name"},
	"lat":   {"latitude", "lat"},
	"lon":   {"longitude", "lon"},
	"price": {"price_per_gallon", "retail price"},
}

func (s *CSVStationSource) LoadStations(ctx context.Context) ([]domain.StationRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open station csv %q: %w", s.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read station csv header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, fmt.Errorf("station csv %q: %w", s.Path, err)
	}

	records := make([]domain.StationRecord, 0, 256)
	skipped := 0
	rowNum := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := r.Read()
		if err != nil {
			break
		}
		rowNum++

		lat, latErr := parseField(row, cols["lat"])
		lon, lonErr := parseField(row, cols["lon"])
		price, priceErr := parseField(row, cols["price"])
		if latErr != nil || lonErr != nil || priceErr != nil {
			skipped++
			continue
		}

		id := stringField(row, cols["id"])
		if id == "" {
			id = strconv.Itoa(rowNum)
		}
		name := stringField(row, cols["name"])
		if name == "" {
			name = id
		}

		records = append(records, domain.StationRecord{
			ID:             id,
			Name:           name,
			Lat:            lat,
			Lon:            lon,
			PricePerGallon: price,
		})
	}

	if skipped > 0 {
		log.Printf("station csv load path=%s rows=%d skipped=%d", s.Path, len(records), skipped)
	}

	return records, nil
}

// resolveColumns maps logical fields to header indexes. Latitude,
// longitude, and price are mandatory; id and name fall back to the row
// number when absent.
func resolveColumns(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		cols[field] = -1
		for _, a := range aliases {
			if i, ok := byName[a]; ok {
				cols[field] = i
				break
			}
		}
	}

	for _, field := range []string{"lat", "lon", "price"} {
		if cols[field] < 0 {
			return nil, fmt.Errorf("missing required column %q (aliases %v)", field, columnAliases[field])
		}
	}

	return cols, nil
}

func parseField(row []string, idx int) (float64, error) {
	if idx < 0 || idx >= len(row) {
		return 0, fmt.Errorf("column index %d out of range", idx)
	}
	return strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
}

func stringField(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
