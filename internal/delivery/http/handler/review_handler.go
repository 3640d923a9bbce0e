package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"healthspot/internal/converter"
	"healthspot/internal/delivery/dto"
	"healthspot/internal/domain/entity"
	"healthspot/internal/usecase"
	"healthspot/pkg/response"
)

type ReviewHandler struct {
	reviewUsecase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUsecase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase}
}

// GetGoogleReviews answers GET /api/reviews/{id}/google.
func (h *ReviewHandler) GetGoogleReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewUsecase.GetGoogleReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeReviewError(w, err)
		return
	}
	h.writeReviews(w, reviews, entity.ReviewSourceGoogle)
}

// GetCommunityReviews answers GET /api/reviews/{id}/community.
func (h *ReviewHandler) GetCommunityReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewUsecase.GetCommunityReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeReviewError(w, err)
		return
	}
	h.writeReviews(w, reviews, entity.ReviewSourceReddit)
}

// AnalyzeReviews answers GET /api/reviews/{id}/analysis.
func (h *ReviewHandler) AnalyzeReviews(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.reviewUsecase.AnalyzeReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeReviewError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Review analysis completed", dto.ReviewAnalysisResponse{
		ProviderName: analysis.ProviderName,
		PlaceID:      analysis.PlaceID,
		ReviewCount:  analysis.ReviewCount,
		Sentiment:    analysis.Sentiment,
		Summary:      analysis.Summary,
	})
}

func (h *ReviewHandler) writeReviews(w http.ResponseWriter, reviews []entity.Review, source string) {
	response.Success(w, http.StatusOK, "Reviews retrieved successfully", dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Count:   len(reviews),
		Source:  source,
	})
}

func (h *ReviewHandler) writeReviewError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrProviderNotFound:
		response.NotFound(w, "Provider not found")
	case usecase.ErrReviewsUnavailable:
		response.ServiceUnavailable(w, "Reviews are temporarily unavailable")
	default:
		response.InternalServerError(w, "Failed to get reviews")
	}
}
