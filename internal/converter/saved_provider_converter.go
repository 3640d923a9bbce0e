package converter

import (
	"healthspot/internal/delivery/dto"
	"healthspot/internal/domain/entity"
)

// SavedProvidersToResponses converts saved-provider rows (with the provider
// association loaded) to response DTOs
func SavedProvidersToResponses(saved []entity.SavedProvider) []dto.SavedProviderResponse {
	responses := make([]dto.SavedProviderResponse, len(saved))
	for i, s := range saved {
		responses[i] = dto.SavedProviderResponse{
			ID:       s.ID,
			SavedAt:  s.CreatedAt,
			Provider: *ProviderToResponse(&s.Provider),
		}
	}
	return responses
}

// SearchHistoryToResponses converts history records to response DTOs
func SearchHistoryToResponses(records []entity.SearchHistory) []dto.SearchHistoryResponse {
	responses := make([]dto.SearchHistoryResponse, len(records))
	for i, record := range records {
		responses[i] = dto.SearchHistoryResponse{
			Latitude:    record.Params.Latitude,
			Longitude:   record.Params.Longitude,
			Type:        record.Params.Type,
			Specialty:   record.Params.Specialty,
			Radius:      record.Params.Radius,
			Insurance:   record.Params.Insurance,
			ResultCount: record.ResultCount,
			Timestamp:   record.Timestamp,
		}
	}
	return responses
}
