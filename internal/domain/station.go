package domain

// StationRecord is one fuel station from the catalogue snapshot.
// Records are immutable for the lifetime of a request.
type StationRecord struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	PricePerGallon float64 `json:"price_per_gallon"`
}
