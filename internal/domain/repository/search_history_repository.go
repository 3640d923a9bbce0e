package repository

import (
	"context"

	"healthspot/internal/domain/entity"
)

type SearchHistoryRepository interface {
	Create(ctx context.Context, record *entity.SearchHistory) error
	FindRecent(ctx context.Context, anonymousID string, limit int) ([]entity.SearchHistory, error)
}
