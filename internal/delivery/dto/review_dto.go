package dto

import "time"

// Response DTOs

type ReviewResponse struct {
	ID        uint      `json:"id"`
	PlaceID   string    `json:"place_id"`
	Source    string    `json:"source"`
	Content   string    `json:"content"`
	Author    string    `json:"author,omitempty"`
	Rating    float64   `json:"rating,omitempty"`
	Sentiment string    `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Count   int              `json:"count"`
	Source  string           `json:"source"`
}

type ReviewAnalysisResponse struct {
	ProviderName string         `json:"provider_name"`
	PlaceID      string         `json:"place_id"`
	ReviewCount  int            `json:"review_count"`
	Sentiment    map[string]int `json:"sentiment"`
	Summary      string         `json:"summary"`
}
