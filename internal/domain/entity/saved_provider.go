package entity

import "time"

// SavedProvider links an anonymous visitor to a provider they bookmarked.
type SavedProvider struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AnonymousID string    `gorm:"type:varchar(64);not null;index" json:"anonymous_id"`
	ProviderID  uint      `gorm:"not null" json:"provider_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

func (SavedProvider) TableName() string {
	return "saved_providers"
}
