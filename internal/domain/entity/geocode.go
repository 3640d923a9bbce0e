package entity

// GeocodeResult is the outcome of resolving a postal code to coordinates.
// It is computed per request and never persisted directly; Source names the
// strategy or service that produced the coordinates and exists purely for
// diagnostics.
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
	Source           string  `json:"source"`
	Approximate      bool    `json:"approximate,omitempty"`
}

// SearchCriteria is the input to a provider search. At least one of
// coordinates, postal code, or free-text query must be set; the delivery
// layer validates that before the usecase runs.
type SearchCriteria struct {
	Lat        float64
	Lng        float64
	Radius     int
	Type       string
	Specialty  string
	PriceRange int
	Insurance  []string
	MinRating  float64
}
