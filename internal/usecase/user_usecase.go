package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"healthspot/internal/domain/entity"
	"healthspot/internal/domain/repository"
)

const defaultHistoryLimit = 20

// UserUseCase tracks anonymous visitors and their search history in the
// document store. Every error here is soft: identity and history are
// conveniences, and a store outage must never fail a search.
type UserUseCase struct {
	Log         *logrus.Logger
	UserRepo    repository.AnonymousUserRepository
	HistoryRepo repository.SearchHistoryRepository
}

func NewUserUseCase(log *logrus.Logger, userRepo repository.AnonymousUserRepository, historyRepo repository.SearchHistoryRepository) *UserUseCase {
	return &UserUseCase{Log: log, UserRepo: userRepo, HistoryRepo: historyRepo}
}

// EnsureUser resolves the cookie value to a user record, minting a fresh
// identity when the cookie is absent or unknown. The returned id is what the
// middleware sets back on the response cookie.
func (u *UserUseCase) EnsureUser(ctx context.Context, anonymousID string) string {
	if anonymousID != "" {
		user, err := u.UserRepo.FindByID(ctx, anonymousID)
		if err != nil {
			u.Log.WithError(err).Debug("failed to look up anonymous user")
			return anonymousID
		}
		if user != nil {
			if err := u.UserRepo.TouchLastAccess(ctx, anonymousID); err != nil {
				u.Log.WithError(err).Debug("failed to touch anonymous user")
			}
			return anonymousID
		}
	}

	newID := uuid.NewString()
	now := time.Now()
	err := u.UserRepo.Create(ctx, &entity.AnonymousUser{
		AnonymousID:    newID,
		SavedProviders: []entity.SavedPlaceRef{},
		CreatedAt:      now,
		LastAccess:     now,
	})
	if err != nil {
		u.Log.WithError(err).Warn("failed to create anonymous user record")
	}
	return newID
}

// RecordSearch appends one search to the visitor's history, best-effort.
func (u *UserUseCase) RecordSearch(ctx context.Context, anonymousID string, criteria entity.SearchCriteria, resultCount int) {
	if anonymousID == "" {
		return
	}
	err := u.HistoryRepo.Create(ctx, &entity.SearchHistory{
		AnonymousID: anonymousID,
		Params: entity.SearchHistoryQuery{
			Latitude:   criteria.Lat,
			Longitude:  criteria.Lng,
			Type:       criteria.Type,
			Specialty:  criteria.Specialty,
			PriceRange: criteria.PriceRange,
			Radius:     criteria.Radius,
			Insurance:  criteria.Insurance,
		},
		ResultCount: resultCount,
		Timestamp:   time.Now(),
	})
	if err != nil {
		u.Log.WithError(err).Debug("failed to record search history")
	}
}

// History returns the visitor's most recent searches, newest first.
func (u *UserUseCase) History(ctx context.Context, anonymousID string, limit int) ([]entity.SearchHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}
	return u.HistoryRepo.FindRecent(ctx, anonymousID, limit)
}
