package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"healthspot/internal/domain/entity"
	"healthspot/internal/domain/repository"
	"healthspot/internal/gateway/deepseek"
	"healthspot/internal/gateway/twilio"
	"healthspot/internal/metrics"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSmsUnavailable       = errors.New("sms delivery unavailable")
)

// SMSSender is the slice of the Twilio gateway the SMS usecase needs.
type SMSSender interface {
	SendMessage(ctx context.Context, to, body string) (*twilio.Message, error)
	IsConfigured() bool
}

// ChatHealthChecker reports the chat-completion API status for the SMS
// health endpoint.
type ChatHealthChecker interface {
	CheckHealth(ctx context.Context) deepseek.HealthStatus
}

// SmsUseCase manages SMS subscriptions and both directions of messaging:
// outbound provider notifications and the inbound Twilio webhook with its
// keyword commands.
type SmsUseCase struct {
	Log              *logrus.Logger
	SubscriptionRepo repository.SmsSubscriptionRepository
	ProviderRepo     repository.ProviderRepository
	Sender           SMSSender
	Chat             Completer
	ChatHealth       ChatHealthChecker
}

func NewSmsUseCase(log *logrus.Logger, subscriptionRepo repository.SmsSubscriptionRepository, providerRepo repository.ProviderRepository, sender SMSSender, chat Completer, chatHealth ChatHealthChecker) *SmsUseCase {
	return &SmsUseCase{
		Log:              log,
		SubscriptionRepo: subscriptionRepo,
		ProviderRepo:     providerRepo,
		Sender:           sender,
		Chat:             chat,
		ChatHealth:       chatHealth,
	}
}

// SubscribeInput is the subscribe request after DTO validation.
type SubscribeInput struct {
	PhoneNumber   string
	ProviderTypes []string
	Latitude      *float64
	Longitude     *float64
	Radius        float64
	AnonymousID   string
}

// Subscribe registers a phone number for provider updates. Subscribing an
// already-known number updates its preferences instead of failing, so
// clients can re-submit the form freely.
func (u *SmsUseCase) Subscribe(ctx context.Context, input SubscribeInput) (*entity.SmsSubscription, error) {
	existing, err := u.SubscriptionRepo.FindByPhoneNumber(ctx, input.PhoneNumber)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.ProviderTypes = entity.StringSlice(input.ProviderTypes)
		existing.Latitude = input.Latitude
		existing.Longitude = input.Longitude
		if input.Radius > 0 {
			existing.Radius = input.Radius
		}
		existing.IsVerified = true
		if err := u.SubscriptionRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		u.Log.WithField("phone_number", input.PhoneNumber).Info("sms subscription updated")
		return existing, nil
	}

	sub := &entity.SmsSubscription{
		PhoneNumber:   input.PhoneNumber,
		ProviderTypes: entity.StringSlice(input.ProviderTypes),
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Radius:        input.Radius,
		AnonymousID:   input.AnonymousID,
		IsVerified:    true,
	}
	if sub.Radius <= 0 {
		sub.Radius = 10
	}
	if err := u.SubscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	u.Log.WithField("phone_number", input.PhoneNumber).Info("sms subscription created")
	if u.Sender.IsConfigured() {
		welcome := "You're subscribed to healthcare provider updates. Reply STOP to unsubscribe, HELP for commands."
		if _, err := u.Sender.SendMessage(ctx, sub.PhoneNumber, welcome); err != nil {
			metrics.SMSMessagesTotal.WithLabelValues("outbound", "error").Inc()
			u.Log.WithError(err).Warn("failed to send welcome sms")
		} else {
			metrics.SMSMessagesTotal.WithLabelValues("outbound", "ok").Inc()
		}
	}
	return sub, nil
}

// Unsubscribe removes a subscription by phone number.
func (u *SmsUseCase) Unsubscribe(ctx context.Context, phoneNumber string) error {
	deleted, err := u.SubscriptionRepo.DeleteByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSubscriptionNotFound
	}
	u.Log.WithField("phone_number", phoneNumber).Info("sms subscription removed")
	return nil
}

// Subscriptions lists the visitor's subscriptions.
func (u *SmsUseCase) Subscriptions(ctx context.Context, anonymousID string) ([]entity.SmsSubscription, error) {
	return u.SubscriptionRepo.FindByAnonymousID(ctx, anonymousID)
}

// SendProviderInfo texts one provider's details to a phone number.
func (u *SmsUseCase) SendProviderInfo(ctx context.Context, phoneNumber, providerRef string) error {
	if !u.Sender.IsConfigured() {
		return ErrSmsUnavailable
	}

	provider, err := u.ProviderRepo.FindByIDOrPlaceID(ctx, providerRef)
	if err != nil {
		return err
	}
	if provider == nil {
		return ErrProviderNotFound
	}

	if _, err := u.Sender.SendMessage(ctx, phoneNumber, formatProviderSMS(provider)); err != nil {
		metrics.SMSMessagesTotal.WithLabelValues("outbound", "error").Inc()
		return fmt.Errorf("send provider info: %w", err)
	}
	metrics.SMSMessagesTotal.WithLabelValues("outbound", "ok").Inc()
	return nil
}

// BulkSendResult reports a bulk notification run. Failures carry the phone
// numbers that could not be reached so the caller can retry or report them.
type BulkSendResult struct {
	Sent     int      `json:"sent"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
}

// SendBulk fans a provider notification out to every verified subscriber
// matching the filter, concurrently. Individual delivery failures are
// collected rather than aborting the run.
func (u *SmsUseCase) SendBulk(ctx context.Context, filter repository.SubscriberFilter, providerRef string) (*BulkSendResult, error) {
	if !u.Sender.IsConfigured() {
		return nil, ErrSmsUnavailable
	}

	provider, err := u.ProviderRepo.FindByIDOrPlaceID(ctx, providerRef)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	subscribers, err := u.SubscriptionRepo.FindVerified(ctx, filter)
	if err != nil {
		return nil, err
	}

	body := formatProviderSMS(provider)
	now := time.Now()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		result   BulkSendResult
		failures []string
	)
	for _, sub := range subscribers {
		wg.Add(1)
		go func(sub entity.SmsSubscription) {
			defer wg.Done()
			if _, err := u.Sender.SendMessage(ctx, sub.PhoneNumber, body); err != nil {
				metrics.SMSMessagesTotal.WithLabelValues("outbound", "error").Inc()
				u.Log.WithError(err).WithField("phone_number", sub.PhoneNumber).Warn("bulk sms delivery failed")
				mu.Lock()
				failures = append(failures, sub.PhoneNumber)
				mu.Unlock()
				return
			}
			metrics.SMSMessagesTotal.WithLabelValues("outbound", "ok").Inc()

			sub.LastNotificationSent = &now
			if err := u.SubscriptionRepo.Update(ctx, &sub); err != nil {
				u.Log.WithError(err).WithField("phone_number", sub.PhoneNumber).Warn("failed to record notification time")
			}
			mu.Lock()
			result.Sent++
			mu.Unlock()
		}(sub)
	}
	wg.Wait()

	result.Failed = len(failures)
	result.Failures = failures
	u.Log.WithFields(logrus.Fields{"sent": result.Sent, "failed": result.Failed}).Info("bulk sms run finished")
	return &result, nil
}

// ProcessIncoming handles one inbound message from the Twilio webhook and
// returns the reply body, empty when no reply should be sent. Keyword
// commands are handled locally; anything else goes to the chat-completion
// API as a healthcare question.
func (u *SmsUseCase) ProcessIncoming(ctx context.Context, from, body string) string {
	metrics.SMSMessagesTotal.WithLabelValues("inbound", "ok").Inc()
	command := strings.ToUpper(strings.TrimSpace(body))

	switch command {
	case "STOP", "CANCEL", "UNSUBSCRIBE":
		if err := u.Unsubscribe(ctx, from); err != nil {
			if errors.Is(err, ErrSubscriptionNotFound) {
				return "This number is not subscribed."
			}
			u.Log.WithError(err).Warn("failed to process STOP command")
			return "Sorry, something went wrong. Please try again later."
		}
		return "You have been unsubscribed from provider updates. Reply START to resubscribe."

	case "START", "SUBSCRIBE":
		sub, err := u.SubscriptionRepo.FindByPhoneNumber(ctx, from)
		if err != nil || sub == nil {
			return "No subscription found for this number. Subscribe on the website to get provider updates."
		}
		sub.IsVerified = true
		if err := u.SubscriptionRepo.Update(ctx, sub); err != nil {
			u.Log.WithError(err).Warn("failed to process START command")
			return "Sorry, something went wrong. Please try again later."
		}
		return "Welcome back! You will receive provider updates again. Reply STOP to unsubscribe."

	case "HELP":
		return "Commands: STOP to unsubscribe, START to resubscribe, STATUS for your subscription. Ask any healthcare question for an AI answer."

	case "STATUS":
		sub, err := u.SubscriptionRepo.FindByPhoneNumber(ctx, from)
		if err != nil {
			u.Log.WithError(err).Warn("failed to process STATUS command")
			return "Sorry, something went wrong. Please try again later."
		}
		if sub == nil {
			return "This number is not subscribed."
		}
		types := "all provider types"
		if len(sub.ProviderTypes) > 0 {
			types = strings.Join(sub.ProviderTypes, ", ")
		}
		return fmt.Sprintf("Subscribed for %s within %.0f km.", types, sub.Radius)
	}

	return u.answerQuestion(ctx, body)
}

// RecordDeliveryStatus logs a Twilio status callback. Delivery state is not
// persisted; the callback exists for diagnostics.
func (u *SmsUseCase) RecordDeliveryStatus(messageSID, status, to string) {
	u.Log.WithFields(logrus.Fields{
		"message_sid": messageSID,
		"status":      status,
		"to":          to,
	}).Info("sms delivery status")
}

func (u *SmsUseCase) answerQuestion(ctx context.Context, question string) string {
	if !u.Chat.IsConfigured() {
		return "Reply HELP for available commands."
	}

	answer, err := u.Chat.Complete(ctx, deepseek.CompletionRequest{
		Messages: []deepseek.Message{
			{Role: deepseek.RoleSystem, Content: "You answer general healthcare questions over SMS. Keep answers under 300 characters, recommend seeing a professional for anything serious, and never diagnose."},
			{Role: deepseek.RoleUser, Content: question},
		},
		MaxTokens:   150,
		Temperature: 0.5,
	})
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("deepseek", "error").Inc()
		u.Log.WithError(err).Warn("failed to answer sms question")
		return "Sorry, I could not process that. Reply HELP for available commands."
	}
	metrics.ExternalCallsTotal.WithLabelValues("deepseek", "ok").Inc()
	return answer
}

// ServiceHealth is the SMS subsystem status report.
type ServiceHealth struct {
	Twilio   string                `json:"twilio"`
	DeepSeek deepseek.HealthStatus `json:"deepseek"`
}

// Health reports whether outbound SMS and the AI reply path are usable.
func (u *SmsUseCase) Health(ctx context.Context) ServiceHealth {
	twilioStatus := "unconfigured"
	if u.Sender.IsConfigured() {
		twilioStatus = "configured"
	}
	return ServiceHealth{
		Twilio:   twilioStatus,
		DeepSeek: u.ChatHealth.CheckHealth(ctx),
	}
}

func formatProviderSMS(provider *entity.Provider) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s", provider.Name, provider.Address)
	if provider.Phone != "" {
		fmt.Fprintf(&sb, "\nPhone: %s", provider.Phone)
	}
	if provider.Rating > 0 {
		fmt.Fprintf(&sb, "\nRating: %.1f/5", provider.Rating)
	}
	if provider.Website != "" {
		fmt.Fprintf(&sb, "\n%s", provider.Website)
	}
	return sb.String()
}
