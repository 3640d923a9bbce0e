package repository

import (
	"context"

	"healthspot/internal/domain/entity"
)

type SavedProviderRepository interface {
	FindByAnonymousID(ctx context.Context, anonymousID string) ([]entity.SavedProvider, error)
	Find(ctx context.Context, anonymousID string, providerID uint) (*entity.SavedProvider, error)
	Create(ctx context.Context, saved *entity.SavedProvider) error
	Delete(ctx context.Context, anonymousID string, providerID uint) (int64, error)
}
