package dto

type StationResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	PricePerGallon float64 `json:"price_per_gallon"`
}

type ListStationsResponse struct {
	Count    int               `json:"count"`
	Stations []StationResponse `json:"stations"`
}
