package handler

import (
	"net/http"
	"strconv"

	"healthspot/internal/converter"
	"healthspot/internal/delivery/dto"
	"healthspot/internal/delivery/http/middleware"
	"healthspot/internal/usecase"
	"healthspot/pkg/response"
)

type HistoryHandler struct {
	userUsecase *usecase.UserUseCase
}

func NewHistoryHandler(userUsecase *usecase.UserUseCase) *HistoryHandler {
	return &HistoryHandler{userUsecase: userUsecase}
}

// List answers GET /api/history with the visitor's recent searches.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	anonymousID, ok := middleware.GetAnonymousIDFromContext(r.Context())
	if !ok {
		response.Success(w, http.StatusOK, "Search history retrieved successfully", []dto.SearchHistoryResponse{})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	records, err := h.userUsecase.History(r.Context(), anonymousID, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get search history")
		return
	}

	response.Success(w, http.StatusOK, "Search history retrieved successfully", converter.SearchHistoryToResponses(records))
}
