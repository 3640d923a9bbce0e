package converter

import (
	"healthspot/internal/delivery/dto"
	"healthspot/internal/domain/entity"
)

// SubscriptionToResponse converts an SmsSubscription entity to a response DTO
func SubscriptionToResponse(sub *entity.SmsSubscription) *dto.SubscriptionResponse {
	if sub == nil {
		return nil
	}

	return &dto.SubscriptionResponse{
		ID:            sub.ID,
		PhoneNumber:   sub.PhoneNumber,
		ProviderTypes: sub.ProviderTypes,
		Radius:        sub.Radius,
		IsVerified:    sub.IsVerified,
		CreatedAt:     sub.CreatedAt,
		LastSent:      sub.LastNotificationSent,
	}
}

// SubscriptionsToResponses converts a slice of subscriptions to response DTOs
func SubscriptionsToResponses(subs []entity.SmsSubscription) []dto.SubscriptionResponse {
	responses := make([]dto.SubscriptionResponse, len(subs))
	for i := range subs {
		responses[i] = *SubscriptionToResponse(&subs[i])
	}
	return responses
}
