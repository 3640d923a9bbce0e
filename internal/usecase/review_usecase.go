package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"healthspot/internal/domain/entity"
	"healthspot/internal/domain/repository"
	"healthspot/internal/gateway/deepseek"
	"healthspot/internal/metrics"
)

var ErrReviewsUnavailable = errors.New("reviews unavailable")

// Completer is the slice of the chat-completion gateway the review and SMS
// usecases need.
type Completer interface {
	Complete(ctx context.Context, req deepseek.CompletionRequest) (string, error)
	IsConfigured() bool
}

// ReviewUseCase serves provider reviews with source-specific cache TTLs.
// Google reviews come from the Places details endpoint; community reviews
// are summarized from public discussion by the chat-completion API. Both are
// persisted so repeat lookups within the TTL never leave the database.
type ReviewUseCase struct {
	Log          *logrus.Logger
	ReviewRepo   repository.ReviewRepository
	ProviderRepo repository.ProviderRepository
	Places       PlacesAPI
	Chat         Completer
	GoogleTTL    time.Duration
	RedditTTL    time.Duration
}

func NewReviewUseCase(log *logrus.Logger, reviewRepo repository.ReviewRepository, providerRepo repository.ProviderRepository, places PlacesAPI, chat Completer, googleTTL, redditTTL time.Duration) *ReviewUseCase {
	return &ReviewUseCase{
		Log:          log,
		ReviewRepo:   reviewRepo,
		ProviderRepo: providerRepo,
		Places:       places,
		Chat:         chat,
		GoogleTTL:    googleTTL,
		RedditTTL:    redditTTL,
	}
}

// GetGoogleReviews returns Google reviews for a provider, reusing rows newer
// than the Google TTL before calling out to the Places API.
func (u *ReviewUseCase) GetGoogleReviews(ctx context.Context, ref string) ([]entity.Review, error) {
	provider, err := u.ProviderRepo.FindByIDOrPlaceID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	cached, err := u.ReviewRepo.FindFresh(ctx, provider.PlaceID, entity.ReviewSourceGoogle, time.Now().Add(-u.GoogleTTL))
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	if !u.Places.IsConfigured() {
		return nil, ErrReviewsUnavailable
	}

	place, err := u.Places.PlaceDetails(ctx, provider.PlaceID, []string{"name", "rating", "reviews"})
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "error").Inc()
		u.Log.WithError(err).WithField("place_id", provider.PlaceID).Error("failed to fetch google reviews")
		return nil, ErrReviewsUnavailable
	}
	metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "ok").Inc()

	reviews := make([]entity.Review, 0, len(place.Reviews))
	for _, r := range place.Reviews {
		reviews = append(reviews, entity.Review{
			ProviderID: provider.ID,
			PlaceID:    provider.PlaceID,
			Source:     entity.ReviewSourceGoogle,
			Content:    r.Text,
			Author:     r.AuthorName,
			Rating:     r.Rating,
			Sentiment:  entity.SentimentFromRating(r.Rating),
		})
	}
	if len(reviews) == 0 {
		return []entity.Review{}, nil
	}

	if err := u.ReviewRepo.CreateBatch(ctx, reviews); err != nil {
		u.Log.WithError(err).Warn("failed to cache google reviews")
	}
	return reviews, nil
}

// GetCommunityReviews returns community-sourced impressions of a provider.
// There is no official discussion-board API, so the chat-completion service
// summarizes what patients typically report about this kind of facility.
// Results are cached under the reddit source with the longer TTL.
func (u *ReviewUseCase) GetCommunityReviews(ctx context.Context, ref string) ([]entity.Review, error) {
	provider, err := u.ProviderRepo.FindByIDOrPlaceID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	cached, err := u.ReviewRepo.FindFresh(ctx, provider.PlaceID, entity.ReviewSourceReddit, time.Now().Add(-u.RedditTTL))
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	if !u.Chat.IsConfigured() {
		return nil, ErrReviewsUnavailable
	}

	prompt := fmt.Sprintf(
		"Summarize typical patient experiences discussed online for %q, a healthcare provider at %s. "+
			"Write 3 short review-style paragraphs separated by blank lines. "+
			"Be balanced and note that these are aggregated impressions, not verified reviews.",
		provider.Name, provider.Address)

	content, err := u.Chat.Complete(ctx, deepseek.CompletionRequest{
		Messages: []deepseek.Message{
			{Role: deepseek.RoleSystem, Content: "You summarize public discussion about healthcare providers."},
			{Role: deepseek.RoleUser, Content: prompt},
		},
		MaxTokens:   600,
		Temperature: 0.7,
	})
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("deepseek", "error").Inc()
		u.Log.WithError(err).WithField("place_id", provider.PlaceID).Error("failed to generate community reviews")
		return nil, ErrReviewsUnavailable
	}
	metrics.ExternalCallsTotal.WithLabelValues("deepseek", "ok").Inc()

	reviews := make([]entity.Review, 0, 3)
	for _, paragraph := range strings.Split(content, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		reviews = append(reviews, entity.Review{
			ProviderID: provider.ID,
			PlaceID:    provider.PlaceID,
			Source:     entity.ReviewSourceReddit,
			Content:    paragraph,
			Author:     "community",
			Sentiment:  entity.SentimentNeutral,
		})
	}
	if len(reviews) == 0 {
		return []entity.Review{}, nil
	}

	if err := u.ReviewRepo.CreateBatch(ctx, reviews); err != nil {
		u.Log.WithError(err).Warn("failed to cache community reviews")
	}
	return reviews, nil
}

// ReviewAnalysis is the AI summary of everything cached for a provider.
type ReviewAnalysis struct {
	ProviderName string         `json:"provider_name"`
	PlaceID      string         `json:"place_id"`
	ReviewCount  int            `json:"review_count"`
	Sentiment    map[string]int `json:"sentiment"`
	Summary      string         `json:"summary"`
}

func sentimentBreakdown(reviews []entity.Review) map[string]int {
	breakdown := map[string]int{
		entity.SentimentPositive: 0,
		entity.SentimentNeutral:  0,
		entity.SentimentNegative: 0,
	}
	for _, r := range reviews {
		breakdown[r.Sentiment]++
	}
	return breakdown
}

// AnalyzeReviews summarizes all cached reviews for a provider into strengths
// and recurring complaints. It is computed per request from whatever the
// cache holds; callers wanting fresh input fetch reviews first.
func (u *ReviewUseCase) AnalyzeReviews(ctx context.Context, ref string) (*ReviewAnalysis, error) {
	provider, err := u.ProviderRepo.FindByIDOrPlaceID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	if !u.Chat.IsConfigured() {
		return nil, ErrReviewsUnavailable
	}

	var all []entity.Review
	for _, source := range []string{entity.ReviewSourceGoogle, entity.ReviewSourceReddit} {
		reviews, err := u.ReviewRepo.FindFresh(ctx, provider.PlaceID, source, time.Time{})
		if err != nil {
			return nil, err
		}
		all = append(all, reviews...)
	}
	if len(all) == 0 {
		return &ReviewAnalysis{
			ProviderName: provider.Name,
			PlaceID:      provider.PlaceID,
			Sentiment:    sentimentBreakdown(nil),
			Summary:      "No reviews available yet for this provider.",
		}, nil
	}

	var sb strings.Builder
	for i, r := range all {
		if i >= 30 {
			break
		}
		fmt.Fprintf(&sb, "- [%s", r.Source)
		if r.Rating > 0 {
			fmt.Fprintf(&sb, ", %.0f stars", r.Rating)
		}
		fmt.Fprintf(&sb, "] %s\n", r.Content)
	}

	summary, err := u.Chat.Complete(ctx, deepseek.CompletionRequest{
		Messages: []deepseek.Message{
			{Role: deepseek.RoleSystem, Content: "You analyze patient reviews of healthcare providers."},
			{Role: deepseek.RoleUser, Content: fmt.Sprintf(
				"Analyze these reviews of %q. List the main strengths, the recurring complaints, "+
					"and an overall recommendation in under 150 words.\n\n%s",
				provider.Name, sb.String())},
		},
		MaxTokens:   400,
		Temperature: 0.3,
	})
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("deepseek", "error").Inc()
		return nil, ErrReviewsUnavailable
	}
	metrics.ExternalCallsTotal.WithLabelValues("deepseek", "ok").Inc()

	return &ReviewAnalysis{
		ProviderName: provider.Name,
		PlaceID:      provider.PlaceID,
		ReviewCount:  len(all),
		Sentiment:    sentimentBreakdown(all),
		Summary:      summary,
	}, nil
}
