package repository

import (
	"context"

	"healthspot/internal/domain/entity"
	"healthspot/pkg/geo"
)

// ProviderFilter narrows a bounding-box provider query. Slice fields that are
// serialized to text columns (types, specialties) are matched by substring;
// the insurance intersection happens in memory in the usecase.
type ProviderFilter struct {
	Type       string
	Specialty  string
	PriceRange int
}

type ProviderRepository interface {
	FindInBounds(ctx context.Context, box geo.BoundingBox, filter ProviderFilter) ([]entity.Provider, error)
	FindByPlaceID(ctx context.Context, placeID string) (*entity.Provider, error)
	FindByIDOrPlaceID(ctx context.Context, ref string) (*entity.Provider, error)
	Create(ctx context.Context, provider *entity.Provider) error
	Update(ctx context.Context, provider *entity.Provider) error
	// UpsertByPlaceID creates the provider when no row with its placeId
	// exists; an existing row is left untouched and returned.
	UpsertByPlaceID(ctx context.Context, provider *entity.Provider) (*entity.Provider, error)
}
