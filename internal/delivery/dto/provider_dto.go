package dto

import "healthspot/pkg/geo"

// Request DTOs

// SearchProvidersRequest is parsed from query parameters. Exactly one
// location input is required: coordinates, or a pincode, or a free-text
// query; the handler enforces that beyond the tag validation.
type SearchProvidersRequest struct {
	Lat        *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng        *float64 `json:"lng" validate:"omitempty,longitude"`
	Pincode    string   `json:"pincode" validate:"omitempty,min=3,max=12"`
	Country    string   `json:"country" validate:"omitempty,len=2"`
	Query      string   `json:"query" validate:"omitempty,min=2"`
	Radius     int      `json:"radius" validate:"omitempty,gte=100,lte=50000"`
	Type       string   `json:"type" validate:"omitempty,max=50"`
	Specialty  string   `json:"specialty" validate:"omitempty,max=100"`
	PriceRange int      `json:"price_range" validate:"omitempty,gte=0,lte=4"`
	Insurance  []string `json:"insurance" validate:"omitempty,dive,max=30"`
	MinRating  float64  `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
}

// Response DTOs

type ProviderResponse struct {
	ID                uint     `json:"id"`
	PlaceID           string   `json:"place_id"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	Phone             string   `json:"phone,omitempty"`
	Website           string   `json:"website,omitempty"`
	Types             []string `json:"types"`
	Specialties       []string `json:"specialties,omitempty"`
	InsuranceAccepted []string `json:"insurance_accepted"`
	Rating            float64  `json:"rating"`
	PriceLevel        int      `json:"price_level"`
}

// SearchProvidersResponse carries the result list plus everything a map
// client needs to render it: the resolved center, the viewport, and a static
// map fallback URL.
type SearchProvidersResponse struct {
	Providers   []ProviderResponse `json:"providers"`
	Count       int                `json:"count"`
	Center      geo.LatLng         `json:"center"`
	Bounds      *geo.Bounds        `json:"bounds,omitempty"`
	MapURL      string             `json:"map_url,omitempty"`
	Approximate bool               `json:"approximate,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

type InsuranceProviderResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MapConfigResponse tells the frontend whether live map features are
// available and what search defaults apply.
type MapConfigResponse struct {
	MapsEnabled   bool `json:"maps_enabled"`
	DefaultRadius int  `json:"default_radius"`
}
