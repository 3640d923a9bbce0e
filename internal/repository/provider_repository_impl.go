package repository

import (
	"context"
	"errors"
	"strings"

	"healthspot/internal/domain/entity"
	domainRepo "healthspot/internal/domain/repository"
	"healthspot/pkg/geo"

	"gorm.io/gorm"
)

type providerRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) domainRepo.ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) FindInBounds(ctx context.Context, box geo.BoundingBox, filter domainRepo.ProviderFilter) ([]entity.Provider, error) {
	query := r.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)

	// types and specialties are JSON-serialized text columns, so category
	// filters are substring matches against the serialized form.
	if filter.Type != "" {
		query = query.Where("types LIKE ?", "%"+strings.ToLower(filter.Type)+"%")
	}
	if strings.TrimSpace(filter.Specialty) != "" {
		query = query.Where("specialties LIKE ?", "%"+strings.ToLower(filter.Specialty)+"%")
	}
	if filter.PriceRange > 0 {
		query = query.Where("price_level <= ?", filter.PriceRange)
	}

	var providers []entity.Provider
	if err := query.Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *providerRepository) FindByPlaceID(ctx context.Context, placeID string) (*entity.Provider, error) {
	var provider entity.Provider
	err := r.db.WithContext(ctx).Where("place_id = ?", placeID).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) FindByIDOrPlaceID(ctx context.Context, ref string) (*entity.Provider, error) {
	var provider entity.Provider
	err := r.db.WithContext(ctx).Where("place_id = ? OR id = ?", ref, ref).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) Create(ctx context.Context, provider *entity.Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *providerRepository) Update(ctx context.Context, provider *entity.Provider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

func (r *providerRepository) UpsertByPlaceID(ctx context.Context, provider *entity.Provider) (*entity.Provider, error) {
	existing, err := r.FindByPlaceID(ctx, provider.PlaceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := r.db.WithContext(ctx).Create(provider).Error; err != nil {
		return nil, err
	}
	return provider, nil
}
