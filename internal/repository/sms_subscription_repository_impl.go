package repository

import (
	"context"
	"errors"
	"strings"

	"healthspot/internal/domain/entity"
	domainRepo "healthspot/internal/domain/repository"

	"gorm.io/gorm"
)

type smsSubscriptionRepository struct {
	db *gorm.DB
}

func NewSmsSubscriptionRepository(db *gorm.DB) domainRepo.SmsSubscriptionRepository {
	return &smsSubscriptionRepository{db: db}
}

func (r *smsSubscriptionRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.SmsSubscription, error) {
	var sub entity.SmsSubscription
	err := r.db.WithContext(ctx).Where("phone_number = ?", phoneNumber).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *smsSubscriptionRepository) FindByAnonymousID(ctx context.Context, anonymousID string) ([]entity.SmsSubscription, error) {
	var subs []entity.SmsSubscription
	err := r.db.WithContext(ctx).Where("anonymous_id = ?", anonymousID).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *smsSubscriptionRepository) FindVerified(ctx context.Context, filter domainRepo.SubscriberFilter) ([]entity.SmsSubscription, error) {
	query := r.db.WithContext(ctx).Where("is_verified = ?", true)

	if len(filter.ProviderTypes) > 0 {
		// provider_types is a JSON text column; match any requested type by
		// substring, same as the provider category filters.
		var conditions []string
		var args []interface{}
		for _, t := range filter.ProviderTypes {
			conditions = append(conditions, "provider_types LIKE ?")
			args = append(args, "%"+strings.ToLower(t)+"%")
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}
	if filter.AnonymousID != "" {
		query = query.Where("anonymous_id = ?", filter.AnonymousID)
	}

	var subs []entity.SmsSubscription
	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *smsSubscriptionRepository) Create(ctx context.Context, sub *entity.SmsSubscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *smsSubscriptionRepository) Update(ctx context.Context, sub *entity.SmsSubscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *smsSubscriptionRepository) DeleteByPhoneNumber(ctx context.Context, phoneNumber string) (int64, error) {
	result := r.db.WithContext(ctx).Where("phone_number = ?", phoneNumber).Delete(&entity.SmsSubscription{})
	return result.RowsAffected, result.Error
}
