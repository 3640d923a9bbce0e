package dto

import "time"

// Request DTOs

type SubscribeRequest struct {
	PhoneNumber   string   `json:"phone_number" validate:"required,e164"`
	ProviderTypes []string `json:"provider_types" validate:"omitempty,dive,max=50"`
	Lat           *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng           *float64 `json:"lng" validate:"omitempty,longitude"`
	Radius        float64  `json:"radius" validate:"omitempty,gte=1,lte=100"`
}

type UnsubscribeRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
}

type SendProviderInfoRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	ProviderID  string `json:"provider_id" validate:"required,max=255"`
}

type BulkSendRequest struct {
	ProviderID    string   `json:"provider_id" validate:"required,max=255"`
	ProviderTypes []string `json:"provider_types" validate:"omitempty,dive,max=50"`
}

// Response DTOs

type SubscriptionResponse struct {
	ID            uint       `json:"id"`
	PhoneNumber   string     `json:"phone_number"`
	ProviderTypes []string   `json:"provider_types"`
	Radius        float64    `json:"radius"`
	IsVerified    bool       `json:"is_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	LastSent      *time.Time `json:"last_notification_sent,omitempty"`
}
