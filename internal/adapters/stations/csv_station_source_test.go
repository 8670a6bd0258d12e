package stations

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stations.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv fixture: %v", err)
	}
	return path
}

func TestCSVSourceEnrichedHeader(t *testing.T) {
	path := writeCSV(t, `id,name,latitude,longitude,price_per_gallon
7,Cheap Fuel,35.100000,-100.100000,3.001
8,Road Stop,35.900000,-100.200000,3.450
`)

	src := NewCSVStationSource(path)
	records, err := src.LoadStations(context.Background())
	if err != nil {
		t.Fatalf("LoadStations returned error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.ID != "7" || first.Name != "Cheap Fuel" {
		t.Errorf("identity fields: %+v", first)
	}
	if first.Lat != 35.1 || first.Lon != -100.1 || first.PricePerGallon != 3.001 {
		t.Errorf("numeric fields: %+v", first)
	}
}

func TestCSVSourceRawExportHeader(t *testing.T) {
	path := writeCSV(t, `OPIS Truckstop ID,Truckstop Name,Retail Price,Lat,Lon
101,WOODSHED OF BIG CABIN,3.339,36.545,-95.221
`)

	src := NewCSVStationSource(path)
	records, err := src.LoadStations(context.Background())
	if err != nil {
		t.Fatalf("LoadStations returned error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].ID != "101" || records[0].PricePerGallon != 3.339 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestCSVSourceSkipsBadRows(t *testing.T) {
	path := writeCSV(t, `id,name,latitude,longitude,price_per_gallon
1,Good,35.1,-100.1,3.001
2,No Coordinates,,,3.200
3,Bad Price,35.2,-100.2,n/a
4,Also Good,35.3,-100.3,3.100
`)

	src := NewCSVStationSource(path)
	records, err := src.LoadStations(context.Background())
	if err != nil {
		t.Fatalf("LoadStations returned error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records after skipping bad rows, got %d: %+v", len(records), records)
	}
	if records[0].ID != "1" || records[1].ID != "4" {
		t.Errorf("kept the wrong rows: %+v", records)
	}
}

func TestCSVSourceMissingRequiredColumn(t *testing.T) {
	path := writeCSV(t, `id,name,latitude,price_per_gallon
1,No Longitude,35.1,3.001
`)

	src := NewCSVStationSource(path)
	if _, err := src.LoadStations(context.Background()); err == nil {
		t.Fatal("expected an error for a missing longitude column")
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	src := NewCSVStationSource(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := src.LoadStations(context.Background()); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
