package repository

import (
	"context"
	"errors"

	"healthspot/internal/domain/entity"
	domainRepo "healthspot/internal/domain/repository"

	"gorm.io/gorm"
)

type savedProviderRepository struct {
	db *gorm.DB
}

func NewSavedProviderRepository(db *gorm.DB) domainRepo.SavedProviderRepository {
	return &savedProviderRepository{db: db}
}

func (r *savedProviderRepository) FindByAnonymousID(ctx context.Context, anonymousID string) ([]entity.SavedProvider, error) {
	var saved []entity.SavedProvider
	err := r.db.WithContext(ctx).Preload("Provider").Where("anonymous_id = ?", anonymousID).Find(&saved).Error
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *savedProviderRepository) Find(ctx context.Context, anonymousID string, providerID uint) (*entity.SavedProvider, error) {
	var saved entity.SavedProvider
	err := r.db.WithContext(ctx).
		Where("anonymous_id = ? AND provider_id = ?", anonymousID, providerID).
		First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &saved, nil
}

func (r *savedProviderRepository) Create(ctx context.Context, saved *entity.SavedProvider) error {
	return r.db.WithContext(ctx).Create(saved).Error
}

func (r *savedProviderRepository) Delete(ctx context.Context, anonymousID string, providerID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("anonymous_id = ? AND provider_id = ?", anonymousID, providerID).
		Delete(&entity.SavedProvider{})
	return result.RowsAffected, result.Error
}
