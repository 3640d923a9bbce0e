package entity

import "time"

// AnonymousUser identifies a client across requests without authentication.
// Stored in the document store, keyed by the cookie value.
type AnonymousUser struct {
	AnonymousID    string          `bson:"anonymousId" json:"anonymous_id"`
	SavedProviders []SavedPlaceRef `bson:"savedProviders" json:"saved_providers"`
	CreatedAt      time.Time       `bson:"createdAt" json:"created_at"`
	LastAccess     time.Time       `bson:"lastAccess" json:"last_access"`
}

type SavedPlaceRef struct {
	ProviderID string    `bson:"providerId" json:"provider_id"`
	SavedAt    time.Time `bson:"savedAt" json:"saved_at"`
}
