package repository

import (
	"context"
	"time"

	"healthspot/internal/domain/entity"
	domainRepo "healthspot/internal/domain/repository"

	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) domainRepo.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) FindFresh(ctx context.Context, placeID, source string, since time.Time) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.WithContext(ctx).
		Where("place_id = ? AND source = ? AND created_at >= ?", placeID, source, since).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) CreateBatch(ctx context.Context, reviews []entity.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&reviews).Error
}
