package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"fuel-route-service/internal/config"

	"github.com/joho/godotenv"
)

// geocodetool enriches a raw truck-stop price export with coordinates
// by geocoding each row's address against Nominatim. Nominatim's usage
// policy allows at most one request per second, so rows are paced and
// a long export takes a while.
const (
	defaultNominatim = "https://nominatim.openstreetmap.org"
	userAgent        = "fuel-route-planner"
	requestInterval  = 1100 * time.Millisecond
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	inPath := config.Get("GEOCODE_INPUT", "data/fuel-prices-raw.csv")
	outPath := config.Get("GEOCODE_OUTPUT", "data/fuel-prices.csv")
	baseURL := config.Get("NOMINATIM_BASE_URL", defaultNominatim)

	if err := run(context.Background(), inPath, outPath, baseURL); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, inPath, outPath, baseURL string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input csv %q: %w", inPath, err)
	}
	defer in.Close()

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read input csv header: %w", err)
	}

	col := func(names ...string) int {
		for i, h := range header {
			for _, n := range names {
				if strings.EqualFold(strings.TrimSpace(h), n) {
					return i
				}
			}
		}
		return -1
	}
	nameIdx := col("truckstop name", "name")
	cityIdx := col("city")
	stateIdx := col("state")
	if nameIdx < 0 || stateIdx < 0 {
		return fmt.Errorf("input csv %q: name and state columns are required", inPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output csv %q: %w", outPath, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(append(header, "latitude", "longitude")); err != nil {
		return fmt.Errorf("write output header: %w", err)
	}

	gc := &geocoder{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	total, resolved := 0, 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read input row: %w", err)
		}
		total++

		query := buildQuery(row, nameIdx, cityIdx, stateIdx)
		lat, lon, err := gc.geocode(ctx, query)
		if err != nil {
			log.Printf("geocode failed query=%q err=%v", query, err)
			row = append(row, "", "")
		} else {
			resolved++
			row = append(row,
				strconv.FormatFloat(lat, 'f', 6, 64),
				strconv.FormatFloat(lon, 'f', 6, 64),
			)
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
		if total%50 == 0 {
			w.Flush()
			log.Printf("geocode progress total=%d resolved=%d", total, resolved)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output csv: %w", err)
	}

	log.Printf("geocode done total=%d resolved=%d output=%s", total, resolved, outPath)
	return nil
}

func buildQuery(row []string, nameIdx, cityIdx, stateIdx int) string {
	parts := make([]string, 0, 3)
	for _, idx := range []int{nameIdx, cityIdx, stateIdx} {
		if idx >= 0 && idx < len(row) {
			if v := strings.TrimSpace(row[idx]); v != "" {
				parts = append(parts, v)
			}
		}
	}
	return strings.Join(parts, ", ")
}

type geocoder struct {
	client  *http.Client
	baseURL string
	last    time.Time
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// geocode resolves one free-form query, pacing requests and retrying
// transient failures with backoff.
func (g *geocoder) geocode(ctx context.Context, query string) (float64, float64, error) {
	if query == "" {
		return 0, 0, fmt.Errorf("empty query")
	}

	endpoint := fmt.Sprintf(
		"%s/search?q=%s&format=json&limit=1&countrycodes=us",
		g.baseURL, url.QueryEscape(query),
	)

	backoff := 2 * time.Second
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := g.pace(ctx); err != nil {
			return 0, 0, err
		}

		results, err := g.fetch(ctx, endpoint)
		if err != nil {
			lastErr = err
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return 0, 0, ctx.Err()
			}
			backoff *= 2
			continue
		}

		if len(results) == 0 {
			return 0, 0, fmt.Errorf("no results")
		}
		lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
		lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
		if latErr != nil || lonErr != nil {
			return 0, 0, fmt.Errorf("unparseable coordinates %q,%q", results[0].Lat, results[0].Lon)
		}
		return lat, lon, nil
	}

	return 0, 0, fmt.Errorf("geocode %q: %w", query, lastErr)
}

// pace enforces the one-request-per-second Nominatim policy with a
// small safety margin.
func (g *geocoder) pace(ctx context.Context) error {
	if wait := requestInterval - time.Since(g.last); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	g.last = time.Now()
	return nil
}

func (g *geocoder) fetch(ctx context.Context, endpoint string) ([]nominatimResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return results, nil
}
