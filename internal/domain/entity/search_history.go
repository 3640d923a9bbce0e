package entity

import "time"

// SearchHistory records one provider search for an anonymous user.
type SearchHistory struct {
	AnonymousID string             `bson:"anonymousId" json:"anonymous_id"`
	Params      SearchHistoryQuery `bson:"searchParams" json:"search_params"`
	ResultCount int                `bson:"resultCount" json:"result_count"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

type SearchHistoryQuery struct {
	Latitude   float64  `bson:"latitude" json:"latitude"`
	Longitude  float64  `bson:"longitude" json:"longitude"`
	Type       string   `bson:"type,omitempty" json:"type,omitempty"`
	Specialty  string   `bson:"specialty,omitempty" json:"specialty,omitempty"`
	PriceRange int      `bson:"priceRange,omitempty" json:"price_range,omitempty"`
	Radius     int      `bson:"radius,omitempty" json:"radius,omitempty"`
	Insurance  []string `bson:"insurance,omitempty" json:"insurance,omitempty"`
}
