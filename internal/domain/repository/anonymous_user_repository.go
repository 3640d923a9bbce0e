package repository

import (
	"context"

	"healthspot/internal/domain/entity"
)

type AnonymousUserRepository interface {
	FindByID(ctx context.Context, anonymousID string) (*entity.AnonymousUser, error)
	Create(ctx context.Context, user *entity.AnonymousUser) error
	TouchLastAccess(ctx context.Context, anonymousID string) error
}
