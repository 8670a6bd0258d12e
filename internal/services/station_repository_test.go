package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"fuel-route-service/internal/domain"
)

// stubSource counts loads and can be told to fail.
type stubSource struct {
	records []domain.StationRecord
	err     error
	calls   atomic.Int64
}

func (s *stubSource) LoadStations(ctx context.Context) ([]domain.StationRecord, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func testRecords() []domain.StationRecord {
	return []domain.StationRecord{
		{ID: "1", Name: "Cheap Fuel", Lat: 35.1, Lon: -100.1, PricePerGallon: 3.001},
		{ID: "2", Name: "Road Stop", Lat: 35.9, Lon: -100.2, PricePerGallon: 3.450},
	}
}

func TestStationRepositoryLoadsOnce(t *testing.T) {
	src := &stubSource{records: testRecords()}
	repo := NewStationRepository(src)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Stations(context.Background()); err != nil {
				t.Errorf("Stations returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Errorf("source loaded %d times, want 1", got)
	}
}

func TestStationRepositoryDefensiveCopy(t *testing.T) {
	repo := NewStationRepository(&stubSource{records: testRecords()})

	first, err := repo.Stations(context.Background())
	if err != nil {
		t.Fatalf("Stations returned error: %v", err)
	}
	first[0].Name = "mutated"

	second, err := repo.Stations(context.Background())
	if err != nil {
		t.Fatalf("Stations returned error: %v", err)
	}
	if second[0].Name != "Cheap Fuel" {
		t.Errorf("snapshot leaked caller mutation: %+v", second[0])
	}
}

func TestStationRepositoryFingerprint(t *testing.T) {
	repoA := NewStationRepository(&stubSource{records: testRecords()})
	repoB := NewStationRepository(&stubSource{records: testRecords()})

	fpA, err := repoA.Fingerprint(context.Background())
	if err != nil {
		t.Fatalf("Fingerprint returned error: %v", err)
	}
	fpB, err := repoB.Fingerprint(context.Background())
	if err != nil {
		t.Fatalf("Fingerprint returned error: %v", err)
	}
	if fpA != fpB {
		t.Errorf("identical data produced different fingerprints: %s vs %s", fpA, fpB)
	}

	changed := testRecords()
	changed[0].PricePerGallon = 2.999
	repoC := NewStationRepository(&stubSource{records: changed})
	fpC, err := repoC.Fingerprint(context.Background())
	if err != nil {
		t.Fatalf("Fingerprint returned error: %v", err)
	}
	if fpC == fpA {
		t.Errorf("price change did not change the fingerprint")
	}
}

func TestStationRepositoryRetriesAfterFailure(t *testing.T) {
	src := &stubSource{err: errors.New("csv missing")}
	repo := NewStationRepository(src)

	if _, err := repo.Stations(context.Background()); err == nil {
		t.Fatal("expected load failure")
	}

	src.err = nil
	src.records = testRecords()

	got, err := repo.Stations(context.Background())
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 records after retry, got %d", len(got))
	}
	if calls := src.calls.Load(); calls != 2 {
		t.Errorf("source loaded %d times, want 2", calls)
	}
}

func TestStationRepositoryInvalidate(t *testing.T) {
	src := &stubSource{records: testRecords()}
	repo := NewStationRepository(src)

	if _, err := repo.Stations(context.Background()); err != nil {
		t.Fatalf("Stations returned error: %v", err)
	}
	repo.Invalidate()
	if _, err := repo.Stations(context.Background()); err != nil {
		t.Fatalf("Stations returned error: %v", err)
	}

	if calls := src.calls.Load(); calls != 2 {
		t.Errorf("source loaded %d times after invalidate, want 2", calls)
	}
}
