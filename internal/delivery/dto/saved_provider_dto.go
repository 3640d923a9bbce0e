package dto

import "time"

// Request DTOs

type SaveProviderRequest struct {
	ProviderID string `json:"provider_id" validate:"required,max=255"`
}

// Response DTOs

type SavedProviderResponse struct {
	ID       uint             `json:"id"`
	SavedAt  time.Time        `json:"saved_at"`
	Provider ProviderResponse `json:"provider"`
}

type SearchHistoryResponse struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Type        string    `json:"type,omitempty"`
	Specialty   string    `json:"specialty,omitempty"`
	Radius      int       `json:"radius,omitempty"`
	Insurance   []string  `json:"insurance,omitempty"`
	ResultCount int       `json:"result_count"`
	Timestamp   time.Time `json:"timestamp"`
}
