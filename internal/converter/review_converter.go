package converter

import (
	"healthspot/internal/delivery/dto"
	"healthspot/internal/domain/entity"
)

// ReviewsToResponses converts a slice of Review entities to response DTOs
func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = dto.ReviewResponse{
			ID:        review.ID,
			PlaceID:   review.PlaceID,
			Source:    review.Source,
			Content:   review.Content,
			Author:    review.Author,
			Rating:    review.Rating,
			Sentiment: review.Sentiment,
			CreatedAt: review.CreatedAt,
		}
	}
	return responses
}
