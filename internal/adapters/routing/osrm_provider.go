package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the public OSRM demo server.
const DefaultBaseURL = "https://router.project-osrm.org"

// OSRMRouteProvider implements RouteProvider against an OSRM server's
// /route/v1 endpoint, requesting the full GeoJSON geometry of the one
// selected route. Transient failures are retried with backoff inside
// this adapter; the pipeline itself never retries.
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	profile string
}

func NewOSRMRouteProvider(baseURL string) *OSRMRouteProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &OSRMRouteProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		profile: "driving",
	}
}

type osrmResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// GetRoute fetches the waypoint sequence for one driving route between
// start and finish. OSRM takes lon,lat pairs and returns GeoJSON
// coordinates in lon,lat order; the result is flipped to lat,lon.
func (p *OSRMRouteProvider) GetRoute(ctx context.Context, start, finish domain.Coordinate) (_ []domain.Coordinate, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s,%s;%s,%s",
		p.baseURL, p.profile,
		formatCoord(start.Lon), formatCoord(start.Lat),
		formatCoord(finish.Lon), formatCoord(finish.Lat),
	)

	query := url.Values{}
	query.Set("overview", "full")
	query.Set("geometries", "geojson")
	requestURL := endpoint + "?" + query.Encode()

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("osrm route request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode osrm response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return nil, errors.New("osrm returned no routes")
	}

	coords := decoded.Routes[0].Geometry.Coordinates
	route := make([]domain.Coordinate, 0, len(coords))
	for i, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("osrm geometry: invalid coordinate pair at index %d", i)
		}
		route = append(route, domain.Coordinate{Lat: c[1], Lon: c[0]})
	}

	return route, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
