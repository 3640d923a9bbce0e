package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"healthspot/internal/domain/entity"
	"healthspot/internal/domain/repository"
	"healthspot/internal/gateway/deepseek"
	"healthspot/internal/gateway/twilio"
)

type stubSubscriptionRepo struct {
	mu       sync.Mutex
	byPhone  map[string]*entity.SmsSubscription
	verified []entity.SmsSubscription
	created  []entity.SmsSubscription
	updated  []entity.SmsSubscription
	deleted  []string
}

func (s *stubSubscriptionRepo) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.SmsSubscription, error) {
	return s.byPhone[phoneNumber], nil
}

func (s *stubSubscriptionRepo) FindByAnonymousID(ctx context.Context, anonymousID string) ([]entity.SmsSubscription, error) {
	return nil, nil
}

func (s *stubSubscriptionRepo) FindVerified(ctx context.Context, filter repository.SubscriberFilter) ([]entity.SmsSubscription, error) {
	return s.verified, nil
}

func (s *stubSubscriptionRepo) Create(ctx context.Context, sub *entity.SmsSubscription) error {
	s.created = append(s.created, *sub)
	return nil
}

func (s *stubSubscriptionRepo) Update(ctx context.Context, sub *entity.SmsSubscription) error {
	s.mu.Lock()
	s.updated = append(s.updated, *sub)
	s.mu.Unlock()
	return nil
}

func (s *stubSubscriptionRepo) DeleteByPhoneNumber(ctx context.Context, phoneNumber string) (int64, error) {
	if _, ok := s.byPhone[phoneNumber]; !ok {
		return 0, nil
	}
	delete(s.byPhone, phoneNumber)
	s.deleted = append(s.deleted, phoneNumber)
	return 1, nil
}

type stubSender struct {
	mu         sync.Mutex
	configured bool
	err        error
	failFor    map[string]bool
	sent       []string
}

func (s *stubSender) SendMessage(ctx context.Context, to, body string) (*twilio.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.failFor[to] {
		return nil, errors.New("undeliverable")
	}
	s.mu.Lock()
	s.sent = append(s.sent, to)
	s.mu.Unlock()
	return &twilio.Message{SID: "SM123", To: to}, nil
}

func (s *stubSender) IsConfigured() bool { return s.configured }

type stubChat struct {
	configured bool
	reply      string
	err        error
	prompts    []string
}

func (s *stubChat) Complete(ctx context.Context, req deepseek.CompletionRequest) (string, error) {
	for _, m := range req.Messages {
		if m.Role == deepseek.RoleUser {
			s.prompts = append(s.prompts, m.Content)
		}
	}
	return s.reply, s.err
}

func (s *stubChat) IsConfigured() bool { return s.configured }

type stubChatHealth struct {
	status deepseek.HealthStatus
}

func (s *stubChatHealth) CheckHealth(ctx context.Context) deepseek.HealthStatus { return s.status }

func newTestSmsUseCase(subRepo *stubSubscriptionRepo, providerRepo *stubProviderRepo, sender *stubSender, chat *stubChat) *SmsUseCase {
	return NewSmsUseCase(quietLogger(), subRepo, providerRepo, sender, chat, &stubChatHealth{})
}

func TestSubscribeCreatesAndWelcomes(t *testing.T) {
	subRepo := &stubSubscriptionRepo{byPhone: map[string]*entity.SmsSubscription{}}
	sender := &stubSender{configured: true}
	uc := newTestSmsUseCase(subRepo, &stubProviderRepo{}, sender, &stubChat{})

	sub, err := uc.Subscribe(context.Background(), SubscribeInput{
		PhoneNumber:   "+15551234567",
		ProviderTypes: []string{"hospital"},
		AnonymousID:   "anon-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sub.IsVerified {
		t.Error("new subscriptions must be verified")
	}
	if sub.Radius != 10 {
		t.Errorf("expected default radius 10, got %v", sub.Radius)
	}
	if len(subRepo.created) != 1 {
		t.Fatalf("expected one created subscription, got %d", len(subRepo.created))
	}
	if len(sender.sent) != 1 || sender.sent[0] != "+15551234567" {
		t.Errorf("expected a welcome message, got %v", sender.sent)
	}
}

func TestSubscribeExistingNumberUpdates(t *testing.T) {
	existing := &entity.SmsSubscription{ID: 7, PhoneNumber: "+15551234567", Radius: 5}
	subRepo := &stubSubscriptionRepo{byPhone: map[string]*entity.SmsSubscription{"+15551234567": existing}}
	sender := &stubSender{configured: true}
	uc := newTestSmsUseCase(subRepo, &stubProviderRepo{}, sender, &stubChat{})

	sub, err := uc.Subscribe(context.Background(), SubscribeInput{
		PhoneNumber:   "+15551234567",
		ProviderTypes: []string{"dentist"},
		Radius:        25,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID != 7 {
		t.Errorf("expected the existing row to be updated, got id %d", sub.ID)
	}
	if sub.Radius != 25 || !sub.ProviderTypes.Contains("dentist") {
		t.Errorf("preferences not updated: %+v", sub)
	}
	if len(subRepo.created) != 0 {
		t.Error("re-subscribing must not create a second row")
	}
	if len(sender.sent) != 0 {
		t.Error("updates must not resend the welcome message")
	}
}

func TestProcessIncomingStopCommand(t *testing.T) {
	subRepo := &stubSubscriptionRepo{byPhone: map[string]*entity.SmsSubscription{
		"+15551234567": {PhoneNumber: "+15551234567"},
	}}
	uc := newTestSmsUseCase(subRepo, &stubProviderRepo{}, &stubSender{configured: true}, &stubChat{})

	for _, keyword := range []string{"STOP", "stop", " Cancel ", "UNSUBSCRIBE"} {
		subRepo.byPhone["+15551234567"] = &entity.SmsSubscription{PhoneNumber: "+15551234567"}
		reply := uc.ProcessIncoming(context.Background(), "+15551234567", keyword)
		if !strings.Contains(reply, "unsubscribed") {
			t.Errorf("keyword %q: unexpected reply %q", keyword, reply)
		}
	}
}

func TestProcessIncomingStartReverifies(t *testing.T) {
	subRepo := &stubSubscriptionRepo{byPhone: map[string]*entity.SmsSubscription{
		"+15551234567": {PhoneNumber: "+15551234567", IsVerified: false},
	}}
	uc := newTestSmsUseCase(subRepo, &stubProviderRepo{}, &stubSender{configured: true}, &stubChat{})

	reply := uc.ProcessIncoming(context.Background(), "+15551234567", "START")
	if !strings.Contains(reply, "Welcome back") {
		t.Errorf("unexpected reply %q", reply)
	}
	if len(subRepo.updated) != 1 || !subRepo.updated[0].IsVerified {
		t.Error("START must re-verify the subscription")
	}
}

func TestProcessIncomingStatus(t *testing.T) {
	subRepo := &stubSubscriptionRepo{byPhone: map[string]*entity.SmsSubscription{
		"+15551234567": {PhoneNumber: "+15551234567", ProviderTypes: entity.StringSlice{"hospital", "dentist"}, Radius: 15},
	}}
	uc := newTestSmsUseCase(subRepo, &stubProviderRepo{}, &stubSender{configured: true}, &stubChat{})

	reply := uc.ProcessIncoming(context.Background(), "+15551234567", "STATUS")
	if !strings.Contains(reply, "hospital, dentist") || !strings.Contains(reply, "15 km") {
		t.Errorf("unexpected reply %q", reply)
	}

	reply = uc.ProcessIncoming(context.Background(), "+19998887777", "STATUS")
	if !strings.Contains(reply, "not subscribed") {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestProcessIncomingQuestionGoesToChat(t *testing.T) {
	chat := &stubChat{configured: true, reply: "Drink fluids and rest."}
	uc := newTestSmsUseCase(&stubSubscriptionRepo{byPhone: map[string]*entity.SmsSubscription{}}, &stubProviderRepo{}, &stubSender{configured: true}, chat)

	reply := uc.ProcessIncoming(context.Background(), "+15551234567", "What helps with a cold?")
	if reply != "Drink fluids and rest." {
		t.Errorf("unexpected reply %q", reply)
	}
	if len(chat.prompts) != 1 || chat.prompts[0] != "What helps with a cold?" {
		t.Errorf("question not forwarded: %v", chat.prompts)
	}
}

func TestProcessIncomingQuestionWithoutChat(t *testing.T) {
	uc := newTestSmsUseCase(&stubSubscriptionRepo{byPhone: map[string]*entity.SmsSubscription{}}, &stubProviderRepo{}, &stubSender{configured: true}, &stubChat{configured: false})

	reply := uc.ProcessIncoming(context.Background(), "+15551234567", "random text")
	if !strings.Contains(reply, "HELP") {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestSendBulkCollectsFailures(t *testing.T) {
	provider := &entity.Provider{ID: 1, PlaceID: "p1", Name: "City Hospital", Address: "1 Main St"}
	providerRepo := &stubProviderRepo{byRef: map[string]*entity.Provider{"p1": provider}}
	subRepo := &stubSubscriptionRepo{
		byPhone: map[string]*entity.SmsSubscription{},
		verified: []entity.SmsSubscription{
			{PhoneNumber: "+15550000001"},
			{PhoneNumber: "+15550000002"},
			{PhoneNumber: "+15550000003"},
		},
	}
	sender := &stubSender{configured: true, failFor: map[string]bool{"+15550000002": true}}
	uc := newTestSmsUseCase(subRepo, providerRepo, sender, &stubChat{})

	result, err := uc.SendBulk(context.Background(), repository.SubscriberFilter{}, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sent != 2 {
		t.Errorf("expected 2 sent, got %d", result.Sent)
	}
	if result.Failed != 1 || len(result.Failures) != 1 || result.Failures[0] != "+15550000002" {
		t.Errorf("unexpected failures: %+v", result)
	}
	// Delivered subscribers get their notification time recorded.
	if len(subRepo.updated) != 2 {
		t.Errorf("expected 2 notification-time updates, got %d", len(subRepo.updated))
	}
}

func TestSendBulkUnconfiguredSender(t *testing.T) {
	uc := newTestSmsUseCase(&stubSubscriptionRepo{byPhone: map[string]*entity.SmsSubscription{}}, &stubProviderRepo{}, &stubSender{configured: false}, &stubChat{})

	_, err := uc.SendBulk(context.Background(), repository.SubscriberFilter{}, "p1")
	if !errors.Is(err, ErrSmsUnavailable) {
		t.Fatalf("expected ErrSmsUnavailable, got %v", err)
	}
}

func TestUnsubscribeUnknownNumber(t *testing.T) {
	uc := newTestSmsUseCase(&stubSubscriptionRepo{byPhone: map[string]*entity.SmsSubscription{}}, &stubProviderRepo{}, &stubSender{configured: true}, &stubChat{})

	err := uc.Unsubscribe(context.Background(), "+10000000000")
	if !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}
