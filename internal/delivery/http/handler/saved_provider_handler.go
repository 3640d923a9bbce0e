package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"healthspot/internal/converter"
	"healthspot/internal/delivery/dto"
	"healthspot/internal/delivery/http/middleware"
	"healthspot/internal/usecase"
	"healthspot/pkg/response"
	"healthspot/pkg/validator"
)

type SavedProviderHandler struct {
	savedUsecase *usecase.SavedProviderUseCase
	validator    *validator.CustomValidator
}

func NewSavedProviderHandler(savedUsecase *usecase.SavedProviderUseCase, validator *validator.CustomValidator) *SavedProviderHandler {
	return &SavedProviderHandler{
		savedUsecase: savedUsecase,
		validator:    validator,
	}
}

// Save answers POST /api/saved-providers.
func (h *SavedProviderHandler) Save(w http.ResponseWriter, r *http.Request) {
	anonymousID, ok := middleware.GetAnonymousIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusBadRequest, "Missing visitor identity", nil)
		return
	}

	var req dto.SaveProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	saved, err := h.savedUsecase.Save(r.Context(), anonymousID, req.ProviderID)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.NotFound(w, "Provider not found")
		case usecase.ErrAlreadySaved:
			response.Error(w, http.StatusConflict, "Provider already saved", nil)
		default:
			response.InternalServerError(w, "Failed to save provider")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Provider saved successfully", dto.SavedProviderResponse{
		ID:       saved.ID,
		SavedAt:  saved.CreatedAt,
		Provider: *converter.ProviderToResponse(&saved.Provider),
	})
}

// List answers GET /api/saved-providers.
func (h *SavedProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	anonymousID, ok := middleware.GetAnonymousIDFromContext(r.Context())
	if !ok {
		response.Success(w, http.StatusOK, "Saved providers retrieved successfully", []dto.SavedProviderResponse{})
		return
	}

	saved, err := h.savedUsecase.List(r.Context(), anonymousID)
	if err != nil {
		response.InternalServerError(w, "Failed to list saved providers")
		return
	}

	response.Success(w, http.StatusOK, "Saved providers retrieved successfully", converter.SavedProvidersToResponses(saved))
}

// Remove answers DELETE /api/saved-providers/{id}.
func (h *SavedProviderHandler) Remove(w http.ResponseWriter, r *http.Request) {
	anonymousID, ok := middleware.GetAnonymousIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusBadRequest, "Missing visitor identity", nil)
		return
	}

	if err := h.savedUsecase.Remove(r.Context(), anonymousID, mux.Vars(r)["id"]); err != nil {
		if err == usecase.ErrSavedNotFound {
			response.NotFound(w, "Saved provider not found")
			return
		}
		response.InternalServerError(w, "Failed to remove saved provider")
		return
	}

	response.Success(w, http.StatusOK, "Provider removed successfully", nil)
}
