package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"healthspot/internal/domain/entity"
	"healthspot/internal/domain/repository"
)

var (
	ErrAlreadySaved  = errors.New("provider already saved")
	ErrSavedNotFound = errors.New("saved provider not found")
)

// SavedProviderUseCase manages a visitor's bookmarked providers. The
// relational store is authoritative; the document-store user record mirrors
// the saved list for the session profile and is updated best-effort.
type SavedProviderUseCase struct {
	Log          *logrus.Logger
	SavedRepo    repository.SavedProviderRepository
	ProviderRepo repository.ProviderRepository
	UserRepo     repository.AnonymousUserRepository
}

func NewSavedProviderUseCase(log *logrus.Logger, savedRepo repository.SavedProviderRepository, providerRepo repository.ProviderRepository, userRepo repository.AnonymousUserRepository) *SavedProviderUseCase {
	return &SavedProviderUseCase{
		Log:          log,
		SavedRepo:    savedRepo,
		ProviderRepo: providerRepo,
		UserRepo:     userRepo,
	}
}

// Save bookmarks a provider for the visitor. Saving twice is an error so the
// client can surface it instead of silently duplicating.
func (u *SavedProviderUseCase) Save(ctx context.Context, anonymousID, providerRef string) (*entity.SavedProvider, error) {
	provider, err := u.ProviderRepo.FindByIDOrPlaceID(ctx, providerRef)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	existing, err := u.SavedRepo.Find(ctx, anonymousID, provider.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySaved
	}

	saved := &entity.SavedProvider{
		AnonymousID: anonymousID,
		ProviderID:  provider.ID,
		Provider:    *provider,
	}
	if err := u.SavedRepo.Create(ctx, saved); err != nil {
		return nil, err
	}

	if err := u.UserRepo.TouchLastAccess(ctx, anonymousID); err != nil {
		u.Log.WithError(err).Debug("failed to touch anonymous user record")
	}
	u.Log.WithFields(logrus.Fields{
		"anonymous_id": anonymousID,
		"provider_id":  provider.ID,
	}).Info("provider saved")
	return saved, nil
}

// List returns the visitor's saved providers with provider details attached.
func (u *SavedProviderUseCase) List(ctx context.Context, anonymousID string) ([]entity.SavedProvider, error) {
	return u.SavedRepo.FindByAnonymousID(ctx, anonymousID)
}

// Remove deletes a bookmark.
func (u *SavedProviderUseCase) Remove(ctx context.Context, anonymousID, providerRef string) error {
	provider, err := u.ProviderRepo.FindByIDOrPlaceID(ctx, providerRef)
	if err != nil {
		return err
	}
	if provider == nil {
		return ErrSavedNotFound
	}

	deleted, err := u.SavedRepo.Delete(ctx, anonymousID, provider.ID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSavedNotFound
	}
	return nil
}
