package entity

import "time"

const (
	ReviewSourceGoogle = "google"
	ReviewSourceReddit = "reddit"
	ReviewSourceOther  = "other"
)

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Review is a cached provider review, either fetched from Google Places or
// synthesized by the chat-completion API.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uint      `gorm:"not null;index:idx_reviews_provider_source" json:"provider_id"`
	PlaceID    string    `gorm:"type:varchar(255);not null;index" json:"place_id"`
	Source     string    `gorm:"type:varchar(20);not null;index:idx_reviews_provider_source" json:"source"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Author     string    `gorm:"type:varchar(255)" json:"author"`
	Rating     float64   `json:"rating,omitempty"`
	Sentiment  string    `gorm:"type:varchar(10)" json:"sentiment"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// SentimentFromRating maps a star rating onto a coarse sentiment bucket.
func SentimentFromRating(rating float64) string {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating > 0 && rating <= 2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
