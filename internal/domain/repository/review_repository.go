package repository

import (
	"context"
	"time"

	"healthspot/internal/domain/entity"
)

type ReviewRepository interface {
	// FindFresh returns reviews for the place from the given source created
	// after the cutoff, newest first.
	FindFresh(ctx context.Context, placeID, source string, since time.Time) ([]entity.Review, error)
	CreateBatch(ctx context.Context, reviews []entity.Review) error
}
