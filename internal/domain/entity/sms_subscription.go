package entity

import "time"

// SmsSubscription tracks a phone number subscribed to provider updates.
type SmsSubscription struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	PhoneNumber          string      `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone_number"`
	ProviderTypes        StringSlice `gorm:"type:text" json:"provider_types"`
	Latitude             *float64    `json:"latitude,omitempty"`
	Longitude            *float64    `json:"longitude,omitempty"`
	Radius               float64     `gorm:"default:10" json:"radius"`
	AnonymousID          string      `gorm:"type:varchar(64);not null;index" json:"anonymous_id"`
	IsVerified           bool        `gorm:"default:false" json:"is_verified"`
	LastNotificationSent *time.Time  `json:"last_notification_sent,omitempty"`
	CreatedAt            time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SmsSubscription) TableName() string {
	return "sms_subscriptions"
}
