package converter

import (
	"healthspot/internal/delivery/dto"
	"healthspot/internal/domain/entity"
)

// ProviderToResponse converts a Provider entity to ProviderResponse DTO
func ProviderToResponse(provider *entity.Provider) *dto.ProviderResponse {
	if provider == nil {
		return nil
	}

	return &dto.ProviderResponse{
		ID:                provider.ID,
		PlaceID:           provider.PlaceID,
		Name:              provider.Name,
		Address:           provider.Address,
		Latitude:          provider.Latitude,
		Longitude:         provider.Longitude,
		Phone:             provider.Phone,
		Website:           provider.Website,
		Types:             provider.Types,
		Specialties:       provider.Specialties,
		InsuranceAccepted: provider.InsuranceAccepted,
		Rating:            provider.Rating,
		PriceLevel:        provider.PriceLevel,
	}
}

// ProvidersToResponses converts a slice of Provider entities to response DTOs
func ProvidersToResponses(providers []entity.Provider) []dto.ProviderResponse {
	responses := make([]dto.ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = *ProviderToResponse(&providers[i])
	}
	return responses
}
