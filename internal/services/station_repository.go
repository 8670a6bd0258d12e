package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"sync"
)

// StationRepository holds one lazily loaded snapshot of the station
// catalogue, shared read-only across requests.
//
// The first access loads and fingerprints the snapshot under a mutex,
// so concurrent first callers block and observe a single load. A failed
// load is returned to the caller and not cached; the next access
// retries the source.
type StationRepository struct {
	source ports.StationSource

	mu          sync.Mutex
	loaded      bool
	snapshot    []domain.StationRecord
	fingerprint string
}

func NewStationRepository(source ports.StationSource) *StationRepository {
	return &StationRepository{source: source}
}

// Stations returns a defensive copy of the snapshot, loading it on
// first use. Callers never observe each other's mutations.
func (r *StationRepository) Stations(ctx context.Context) ([]domain.StationRecord, error) {
	snapshot, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.StationRecord, len(snapshot))
	copy(out, snapshot)
	return out, nil
}

// Fingerprint returns the content hash of the snapshot, loading it on
// first use. Identical data always produces the same value.
func (r *StationRepository) Fingerprint(ctx context.Context) (string, error) {
	_, fingerprint, err := r.load(ctx)
	return fingerprint, err
}

// Invalidate discards the snapshot so the next access reloads the
// source.
func (r *StationRepository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	r.snapshot = nil
	r.fingerprint = ""
}

func (r *StationRepository) load(ctx context.Context) ([]domain.StationRecord, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.snapshot, r.fingerprint, nil
	}

	records, err := r.source.LoadStations(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load station catalogue: %w", err)
	}

	r.snapshot = records
	r.fingerprint = fingerprintStations(records)
	r.loaded = true

	return r.snapshot, r.fingerprint, nil
}

// fingerprintStations hashes the canonical record serialization; the
// value changes whenever the underlying dataset changes.
func fingerprintStations(records []domain.StationRecord) string {
	h := sha256.New()
	for _, s := range records {
		fmt.Fprintf(h, "%s|%s|%.6f|%.6f|%.3f\n", s.ID, s.Name, s.Lat, s.Lon, s.PricePerGallon)
	}
	return hex.EncodeToString(h.Sum(nil))
}
