package usecase

import (
	"context"
	"testing"
	"time"

	"healthspot/internal/domain/entity"
	"healthspot/internal/gateway/googlemaps"
)

type stubReviewRepo struct {
	fresh   []entity.Review
	batches [][]entity.Review
}

func (s *stubReviewRepo) FindFresh(ctx context.Context, placeID, source string, since time.Time) ([]entity.Review, error) {
	out := make([]entity.Review, 0, len(s.fresh))
	for _, r := range s.fresh {
		if r.Source == source {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReviewRepo) CreateBatch(ctx context.Context, reviews []entity.Review) error {
	s.batches = append(s.batches, reviews)
	return nil
}

func testProviderRepo() *stubProviderRepo {
	return &stubProviderRepo{byRef: map[string]*entity.Provider{
		"p1": {ID: 1, PlaceID: "p1", Name: "City Hospital", Address: "1 Main St"},
	}}
}

func TestGetGoogleReviewsServedFromCache(t *testing.T) {
	reviewRepo := &stubReviewRepo{fresh: []entity.Review{
		{PlaceID: "p1", Source: entity.ReviewSourceGoogle, Content: "Great staff", Rating: 5},
	}}
	places := &stubPlaces{configured: true}
	uc := NewReviewUseCase(quietLogger(), reviewRepo, testProviderRepo(), places, &stubChat{}, 7*24*time.Hour, 30*24*time.Hour)

	reviews, err := uc.GetGoogleReviews(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Content != "Great staff" {
		t.Errorf("unexpected reviews: %+v", reviews)
	}
	if len(reviewRepo.batches) != 0 {
		t.Error("cache hits must not write new rows")
	}
}

func TestGetGoogleReviewsFetchesAndCaches(t *testing.T) {
	reviewRepo := &stubReviewRepo{}
	places := &stubPlaces{
		configured: true,
		details: &googlemaps.Place{
			PlaceID: "p1",
			Reviews: []googlemaps.PlaceReview{
				{AuthorName: "Alice", Rating: 5, Text: "Excellent"},
				{AuthorName: "Bob", Rating: 1, Text: "Long wait"},
			},
		},
	}
	uc := NewReviewUseCase(quietLogger(), reviewRepo, testProviderRepo(), places, &stubChat{}, 7*24*time.Hour, 30*24*time.Hour)

	reviews, err := uc.GetGoogleReviews(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].Sentiment != entity.SentimentPositive {
		t.Errorf("5-star review should be positive, got %q", reviews[0].Sentiment)
	}
	if reviews[1].Sentiment != entity.SentimentNegative {
		t.Errorf("1-star review should be negative, got %q", reviews[1].Sentiment)
	}
	if len(reviewRepo.batches) != 1 {
		t.Error("fetched reviews must be cached")
	}
}

func TestGetGoogleReviewsUnknownProvider(t *testing.T) {
	uc := NewReviewUseCase(quietLogger(), &stubReviewRepo{}, &stubProviderRepo{byRef: map[string]*entity.Provider{}}, &stubPlaces{configured: true}, &stubChat{}, time.Hour, time.Hour)

	_, err := uc.GetGoogleReviews(context.Background(), "missing")
	if err != ErrProviderNotFound {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestGetCommunityReviewsGenerates(t *testing.T) {
	reviewRepo := &stubReviewRepo{}
	chat := &stubChat{
		configured: true,
		reply:      "Patients praise the staff.\n\nSome mention parking trouble.\n\nOverall positive impressions.",
	}
	uc := NewReviewUseCase(quietLogger(), reviewRepo, testProviderRepo(), &stubPlaces{}, chat, time.Hour, time.Hour)

	reviews, err := uc.GetCommunityReviews(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(reviews))
	}
	for _, r := range reviews {
		if r.Source != entity.ReviewSourceReddit {
			t.Errorf("expected community source, got %q", r.Source)
		}
	}
	if len(reviewRepo.batches) != 1 {
		t.Error("generated reviews must be cached")
	}
}

func TestGetCommunityReviewsWithoutChat(t *testing.T) {
	uc := NewReviewUseCase(quietLogger(), &stubReviewRepo{}, testProviderRepo(), &stubPlaces{}, &stubChat{configured: false}, time.Hour, time.Hour)

	_, err := uc.GetCommunityReviews(context.Background(), "p1")
	if err != ErrReviewsUnavailable {
		t.Fatalf("expected ErrReviewsUnavailable, got %v", err)
	}
}

func TestAnalyzeReviewsEmptyCache(t *testing.T) {
	uc := NewReviewUseCase(quietLogger(), &stubReviewRepo{}, testProviderRepo(), &stubPlaces{}, &stubChat{configured: true}, time.Hour, time.Hour)

	analysis, err := uc.AnalyzeReviews(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.ReviewCount != 0 {
		t.Errorf("expected zero reviews, got %d", analysis.ReviewCount)
	}
	if analysis.Summary == "" {
		t.Error("expected a placeholder summary")
	}
}

func TestAnalyzeReviewsSummarizes(t *testing.T) {
	reviewRepo := &stubReviewRepo{fresh: []entity.Review{
		{PlaceID: "p1", Source: entity.ReviewSourceGoogle, Content: "Friendly doctors", Rating: 5, Sentiment: entity.SentimentPositive},
		{PlaceID: "p1", Source: entity.ReviewSourceReddit, Content: "Billing is confusing", Sentiment: entity.SentimentNeutral},
	}}
	chat := &stubChat{configured: true, reply: "Strengths: friendly doctors. Complaints: billing."}
	uc := NewReviewUseCase(quietLogger(), reviewRepo, testProviderRepo(), &stubPlaces{}, chat, time.Hour, time.Hour)

	analysis, err := uc.AnalyzeReviews(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.ReviewCount != 2 {
		t.Errorf("expected 2 reviews analyzed, got %d", analysis.ReviewCount)
	}
	if analysis.Summary != chat.reply {
		t.Errorf("unexpected summary %q", analysis.Summary)
	}
	if analysis.Sentiment[entity.SentimentPositive] != 1 || analysis.Sentiment[entity.SentimentNeutral] != 1 {
		t.Errorf("unexpected sentiment breakdown %v", analysis.Sentiment)
	}
}
