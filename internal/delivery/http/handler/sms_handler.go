package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"healthspot/internal/converter"
	"healthspot/internal/delivery/dto"
	"healthspot/internal/delivery/http/middleware"
	"healthspot/internal/domain/repository"
	"healthspot/internal/gateway/twilio"
	"healthspot/internal/usecase"
	"healthspot/pkg/response"
	"healthspot/pkg/validator"
)

type SmsHandler struct {
	smsUsecase *usecase.SmsUseCase
	validator  *validator.CustomValidator
}

func NewSmsHandler(smsUsecase *usecase.SmsUseCase, validator *validator.CustomValidator) *SmsHandler {
	return &SmsHandler{
		smsUsecase: smsUsecase,
		validator:  validator,
	}
}

// Subscribe answers POST /api/sms/subscribe.
func (h *SmsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req dto.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	anonymousID, _ := middleware.GetAnonymousIDFromContext(r.Context())
	sub, err := h.smsUsecase.Subscribe(r.Context(), usecase.SubscribeInput{
		PhoneNumber:   req.PhoneNumber,
		ProviderTypes: req.ProviderTypes,
		Latitude:      req.Lat,
		Longitude:     req.Lng,
		Radius:        req.Radius,
		AnonymousID:   anonymousID,
	})
	if err != nil {
		response.InternalServerError(w, "Failed to subscribe")
		return
	}

	response.Success(w, http.StatusCreated, "Subscribed successfully", converter.SubscriptionToResponse(sub))
}

// Unsubscribe answers POST /api/sms/unsubscribe.
func (h *SmsHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req dto.UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.smsUsecase.Unsubscribe(r.Context(), req.PhoneNumber); err != nil {
		if err == usecase.ErrSubscriptionNotFound {
			response.NotFound(w, "Subscription not found")
			return
		}
		response.InternalServerError(w, "Failed to unsubscribe")
		return
	}

	response.Success(w, http.StatusOK, "Unsubscribed successfully", nil)
}

// UnsubscribeByPhone answers DELETE /api/sms/unsubscribe/{phoneNumber}.
func (h *SmsHandler) UnsubscribeByPhone(w http.ResponseWriter, r *http.Request) {
	phoneNumber := mux.Vars(r)["phoneNumber"]
	if phoneNumber == "" {
		response.Error(w, http.StatusBadRequest, "Phone number is required", nil)
		return
	}

	if err := h.smsUsecase.Unsubscribe(r.Context(), phoneNumber); err != nil {
		if err == usecase.ErrSubscriptionNotFound {
			response.NotFound(w, "Subscription not found")
			return
		}
		response.InternalServerError(w, "Failed to unsubscribe")
		return
	}

	response.Success(w, http.StatusOK, "Unsubscribed successfully", nil)
}

// ListSubscriptions answers GET /api/sms/subscriptions for the current
// visitor.
func (h *SmsHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	anonymousID, ok := middleware.GetAnonymousIDFromContext(r.Context())
	if !ok {
		response.Success(w, http.StatusOK, "Subscriptions retrieved successfully", []dto.SubscriptionResponse{})
		return
	}

	subs, err := h.smsUsecase.Subscriptions(r.Context(), anonymousID)
	if err != nil {
		response.InternalServerError(w, "Failed to list subscriptions")
		return
	}

	response.Success(w, http.StatusOK, "Subscriptions retrieved successfully", converter.SubscriptionsToResponses(subs))
}

// SendProviderInfo answers POST /api/sms/send.
func (h *SmsHandler) SendProviderInfo(w http.ResponseWriter, r *http.Request) {
	var req dto.SendProviderInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.smsUsecase.SendProviderInfo(r.Context(), req.PhoneNumber, req.ProviderID); err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.NotFound(w, "Provider not found")
		case usecase.ErrSmsUnavailable:
			response.ServiceUnavailable(w, "SMS delivery is not configured")
		default:
			response.InternalServerError(w, "Failed to send SMS")
		}
		return
	}

	response.Success(w, http.StatusOK, "SMS sent successfully", nil)
}

// SendBulk answers POST /api/sms/send-bulk, notifying matching subscribers
// about a provider.
func (h *SmsHandler) SendBulk(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.smsUsecase.SendBulk(r.Context(), repository.SubscriberFilter{
		ProviderTypes: req.ProviderTypes,
	}, req.ProviderID)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.NotFound(w, "Provider not found")
		case usecase.ErrSmsUnavailable:
			response.ServiceUnavailable(w, "SMS delivery is not configured")
		default:
			response.InternalServerError(w, "Failed to send bulk SMS")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bulk send finished", result)
}

// IncomingWebhook answers POST /api/sms/webhook with TwiML. Twilio posts
// form-encoded From and Body fields and expects XML back, so this endpoint
// does not use the JSON response envelope.
func (h *SmsHandler) IncomingWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" {
		http.Error(w, "missing From", http.StatusBadRequest)
		return
	}

	reply := h.smsUsecase.ProcessIncoming(r.Context(), from, body)
	twiml, err := twilio.TwiML(reply)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(twiml)
}

// StatusCallback answers POST /api/sms/status. Twilio posts form-encoded
// delivery updates for outbound messages.
func (h *SmsHandler) StatusCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	h.smsUsecase.RecordDeliveryStatus(
		r.PostFormValue("MessageSid"),
		r.PostFormValue("MessageStatus"),
		r.PostFormValue("To"),
	)
	w.WriteHeader(http.StatusNoContent)
}

// Health answers GET /api/sms/health with the status of the SMS and AI
// integrations.
func (h *SmsHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "SMS service status", h.smsUsecase.Health(r.Context()))
}
