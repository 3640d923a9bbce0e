package repository

import (
	"context"

	"healthspot/internal/domain/entity"
)

// SubscriberFilter selects subscribers for a bulk send.
type SubscriberFilter struct {
	ProviderTypes []string
	AnonymousID   string
}

type SmsSubscriptionRepository interface {
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.SmsSubscription, error)
	FindByAnonymousID(ctx context.Context, anonymousID string) ([]entity.SmsSubscription, error)
	FindVerified(ctx context.Context, filter SubscriberFilter) ([]entity.SmsSubscription, error)
	Create(ctx context.Context, sub *entity.SmsSubscription) error
	Update(ctx context.Context, sub *entity.SmsSubscription) error
	DeleteByPhoneNumber(ctx context.Context, phoneNumber string) (int64, error)
}
