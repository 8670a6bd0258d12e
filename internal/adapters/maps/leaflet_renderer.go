package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"fuel-route-service/internal/domain"
	"html/template"
	"os"
	"path/filepath"
)

// LeafletRenderer writes a self-contained HTML map of the route and its
// fuel stops and returns the artifact path. The artifact is an opaque
// reference to the rest of the system.
type LeafletRenderer struct {
	OutputDir string
}

func NewLeafletRenderer(outputDir string) *LeafletRenderer {
	return &LeafletRenderer{OutputDir: outputDir}
}

type stopMarker struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Label   string  `json:"label"`
	OnRoute bool    `json:"on_route"`
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Fuel Route</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var route = {{.Route}};
var stops = {{.Stops}};
var map = L.map('map').setView(route[Math.floor(route.length / 2)], 6);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
	attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
L.polyline(route, {color: 'blue', weight: 4, opacity: 0.8}).addTo(map);
L.marker(route[0]).addTo(map).bindPopup('Start');
L.marker(route[route.length - 1]).addTo(map).bindPopup('End<br>Total distance: {{.TotalMiles}} mi');
stops.forEach(function (s, i) {
	var marker = L.circleMarker([s.lat, s.lon], {
		radius: 7,
		color: s.on_route ? 'green' : 'orange',
		fillOpacity: 0.8
	}).addTo(map);
	marker.bindPopup('Stop ' + (i + 1) + ': ' + s.label);
});
</script>
</body>
</html>
`))

// RenderMap writes route_map_<name>.html under OutputDir.
func (r *LeafletRenderer) RenderMap(
	ctx context.Context,
	route []domain.Coordinate,
	stops []domain.FuelStop,
	name string,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(route) == 0 {
		return "", fmt.Errorf("render map %q: empty route", name)
	}

	points := make([][2]float64, 0, len(route))
	for _, c := range route {
		points = append(points, [2]float64{c.Lat, c.Lon})
	}

	markers := make([]stopMarker, 0, len(stops))
	totalMiles := 0.0
	for _, s := range stops {
		label := fmt.Sprintf(
			"%s: $%.3f/gal, %.2f gal, $%.2f, route mile %.1f",
			s.Name, s.Price, s.Gallons, s.Cost, s.RouteMile,
		)
		if s.DetourMiles > 0 {
			label += fmt.Sprintf(" (detour %.1f mi round trip)", s.DetourMiles)
		}
		markers = append(markers, stopMarker{
			Lat:     s.Lat,
			Lon:     s.Lon,
			Label:   label,
			OnRoute: s.DetourMiles == 0,
		})
		if s.RouteMile > totalMiles {
			totalMiles = s.RouteMile
		}
	}

	routeJSON, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("render map %q: marshal route: %w", name, err)
	}
	stopsJSON, err := json.Marshal(markers)
	if err != nil {
		return "", fmt.Errorf("render map %q: marshal stops: %w", name, err)
	}

	var buf bytes.Buffer
	data := struct {
		Route      template.JS
		Stops      template.JS
		TotalMiles string
	}{
		Route:      template.JS(routeJSON),
		Stops:      template.JS(stopsJSON),
		TotalMiles: fmt.Sprintf("%.1f", totalMiles),
	}
	if err := mapTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render map %q: execute template: %w", name, err)
	}

	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("render map %q: create output dir: %w", name, err)
	}

	path := filepath.Join(r.OutputDir, fmt.Sprintf("route_map_%s.html", name))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("render map %q: write artifact: %w", name, err)
	}

	return path, nil
}
