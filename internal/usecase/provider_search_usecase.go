package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"healthspot/internal/domain/entity"
	"healthspot/internal/domain/repository"
	"healthspot/internal/gateway/googlemaps"
	"healthspot/internal/metrics"
	"healthspot/internal/service"
	"healthspot/pkg/geo"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrProviderNotFound   = errors.New("provider not found")
	ErrSearchUnavailable  = errors.New("provider search unavailable")
)

// medicalPlaceTypes is the whitelist of Places API types that map directly
// to a type parameter. Anything else is folded into the search keyword with
// the default type.
var medicalPlaceTypes = map[string]bool{
	"hospital":        true,
	"doctor":          true,
	"health":          true,
	"dentist":         true,
	"pharmacy":        true,
	"physiotherapist": true,
}

const defaultPlaceType = "hospital"

// PlacesAPI is the slice of the maps gateway the search usecase needs.
type PlacesAPI interface {
	NearbySearch(ctx context.Context, req googlemaps.NearbySearchRequest) ([]googlemaps.Place, error)
	TextSearch(ctx context.Context, req googlemaps.TextSearchRequest) ([]googlemaps.Place, error)
	PlaceDetails(ctx context.Context, placeID string, fields []string) (*googlemaps.Place, error)
	IsConfigured() bool
}

// ProviderSearchUseCase answers provider searches cache-through: the local
// store is consulted first, and a live Places search runs only when the
// cache does not hold enough results for the area.
type ProviderSearchUseCase struct {
	Log               *logrus.Logger
	ProviderRepo      repository.ProviderRepository
	Places            PlacesAPI
	CacheHitThreshold int
	DefaultRadius     int
}

func NewProviderSearchUseCase(log *logrus.Logger, providerRepo repository.ProviderRepository, places PlacesAPI, cacheHitThreshold, defaultRadius int) *ProviderSearchUseCase {
	return &ProviderSearchUseCase{
		Log:               log,
		ProviderRepo:      providerRepo,
		Places:            places,
		CacheHitThreshold: cacheHitThreshold,
		DefaultRadius:     defaultRadius,
	}
}

// FindNearby returns providers around the given point. Cached providers are
// preferred; a live search tops them up when fewer than the threshold match,
// and every new place found live is persisted for the next search.
func (u *ProviderSearchUseCase) FindNearby(ctx context.Context, criteria entity.SearchCriteria) ([]entity.Provider, error) {
	if !geo.IsValidCoordinates(criteria.Lat, criteria.Lng) {
		return nil, ErrInvalidCoordinates
	}
	if criteria.Radius <= 0 {
		criteria.Radius = u.DefaultRadius
	}

	box := geo.BoxAround(criteria.Lat, criteria.Lng, float64(criteria.Radius))
	cached, err := u.ProviderRepo.FindInBounds(ctx, box, repository.ProviderFilter{
		Type:       criteria.Type,
		Specialty:  criteria.Specialty,
		PriceRange: criteria.PriceRange,
	})
	if err != nil {
		u.Log.WithError(err).Error("failed to query cached providers")
		return nil, err
	}

	cached = u.applyMemoryFilters(cached, criteria)
	if len(cached) >= u.CacheHitThreshold {
		metrics.ProviderCacheLookupsTotal.WithLabelValues("hit").Inc()
		u.Log.WithFields(logrus.Fields{
			"count":  len(cached),
			"lat":    criteria.Lat,
			"lng":    criteria.Lng,
			"radius": criteria.Radius,
		}).Info("provider search served from cache")
		return cached, nil
	}

	metrics.ProviderCacheLookupsTotal.WithLabelValues("miss").Inc()
	if !u.Places.IsConfigured() {
		// No live search possible; whatever the cache had is the answer.
		u.Log.Warn("places api not configured, returning cached providers only")
		return cached, nil
	}

	live, err := u.liveSearch(ctx, criteria)
	if err != nil {
		u.Log.WithError(err).Error("live provider search failed")
		return nil, ErrSearchUnavailable
	}

	merged := mergeByPlaceID(cached, u.applyMemoryFilters(live, criteria))
	return merged, nil
}

func (u *ProviderSearchUseCase) liveSearch(ctx context.Context, criteria entity.SearchCriteria) ([]entity.Provider, error) {
	placeType := defaultPlaceType
	keywordParts := []string{"healthcare"}
	if criteria.Specialty != "" {
		keywordParts = append(keywordParts, criteria.Specialty)
	}
	if criteria.Type != "" {
		if medicalPlaceTypes[criteria.Type] {
			placeType = criteria.Type
		} else {
			keywordParts = append(keywordParts, criteria.Type)
		}
	}

	places, err := u.Places.NearbySearch(ctx, googlemaps.NearbySearchRequest{
		Location: geo.LatLng{Lat: criteria.Lat, Lng: criteria.Lng},
		Radius:   criteria.Radius,
		Type:     placeType,
		Keyword:  strings.Join(keywordParts, " "),
	})
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "error").Inc()
		return nil, err
	}
	metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "ok").Inc()

	providers := make([]entity.Provider, 0, len(places))
	for _, place := range places {
		candidate := placeToProvider(place, criteria.Specialty)
		stored, err := u.ProviderRepo.UpsertByPlaceID(ctx, candidate)
		if err != nil {
			u.Log.WithError(err).WithField("place_id", place.PlaceID).Warn("failed to persist provider")
			providers = append(providers, *candidate)
			continue
		}
		providers = append(providers, *stored)
	}
	return providers, nil
}

// SearchByText answers free-text provider queries ("cardiologist in Austin")
// straight from the Places text search, persisting anything new.
func (u *ProviderSearchUseCase) SearchByText(ctx context.Context, query, placeType string) ([]entity.Provider, error) {
	if !u.Places.IsConfigured() {
		return nil, ErrSearchUnavailable
	}
	if placeType == "" || !medicalPlaceTypes[placeType] {
		placeType = defaultPlaceType
	}

	places, err := u.Places.TextSearch(ctx, googlemaps.TextSearchRequest{Query: query, Type: placeType})
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "error").Inc()
		u.Log.WithError(err).WithField("query", query).Error("text search failed")
		return nil, ErrSearchUnavailable
	}
	metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "ok").Inc()

	providers := make([]entity.Provider, 0, len(places))
	for _, place := range places {
		stored, err := u.ProviderRepo.UpsertByPlaceID(ctx, placeToProvider(place, ""))
		if err != nil {
			u.Log.WithError(err).WithField("place_id", place.PlaceID).Warn("failed to persist provider")
			continue
		}
		providers = append(providers, *stored)
	}
	return providers, nil
}

// GetDetails resolves a provider by local id or Google place id. A cache
// miss falls through to the Places details endpoint and persists the result.
// A cached row without a phone number is refetched so contact fields get
// backfilled once the upstream has them.
func (u *ProviderSearchUseCase) GetDetails(ctx context.Context, ref string) (*entity.Provider, error) {
	provider, err := u.ProviderRepo.FindByIDOrPlaceID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		if provider.Phone != "" || !u.Places.IsConfigured() {
			return provider, nil
		}
		return u.backfillContact(ctx, provider)
	}

	if !u.Places.IsConfigured() {
		return nil, ErrProviderNotFound
	}

	place, err := u.Places.PlaceDetails(ctx, ref, nil)
	if err != nil {
		if errors.Is(err, googlemaps.ErrZeroResults) {
			return nil, ErrProviderNotFound
		}
		metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "error").Inc()
		return nil, err
	}
	metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "ok").Inc()

	stored, err := u.ProviderRepo.UpsertByPlaceID(ctx, placeToProvider(*place, ""))
	if err != nil {
		u.Log.WithError(err).WithField("place_id", place.PlaceID).Warn("failed to persist provider details")
		candidate := placeToProvider(*place, "")
		return candidate, nil
	}
	return stored, nil
}

// backfillContact patches phone and website on a cached provider from the
// details endpoint. Upstream failures are non-fatal and return the cached row.
func (u *ProviderSearchUseCase) backfillContact(ctx context.Context, provider *entity.Provider) (*entity.Provider, error) {
	place, err := u.Places.PlaceDetails(ctx, provider.PlaceID, []string{"formatted_phone_number", "website"})
	if err != nil || place == nil {
		if err != nil && !errors.Is(err, googlemaps.ErrZeroResults) {
			metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "error").Inc()
			u.Log.WithError(err).WithField("place_id", provider.PlaceID).Warn("contact backfill failed")
		}
		return provider, nil
	}
	metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "ok").Inc()

	changed := false
	if place.PhoneNumber != "" && provider.Phone == "" {
		provider.Phone = place.PhoneNumber
		changed = true
	}
	if place.Website != "" && provider.Website == "" {
		provider.Website = place.Website
		changed = true
	}
	if changed {
		if err := u.ProviderRepo.Update(ctx, provider); err != nil {
			u.Log.WithError(err).WithField("place_id", provider.PlaceID).Warn("failed to persist contact backfill")
		}
	}
	return provider, nil
}

func (u *ProviderSearchUseCase) applyMemoryFilters(providers []entity.Provider, criteria entity.SearchCriteria) []entity.Provider {
	filtered := providers[:0:0]
	for _, p := range providers {
		if criteria.MinRating > 0 && p.Rating < criteria.MinRating {
			continue
		}
		if criteria.PriceRange > 0 && p.PriceLevel > criteria.PriceRange {
			continue
		}
		if !service.CheckInsuranceAcceptance(&p, criteria.Insurance) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func placeToProvider(place googlemaps.Place, specialty string) *entity.Provider {
	provider := &entity.Provider{
		PlaceID:           place.PlaceID,
		Name:              place.Name,
		Address:           place.Address,
		Latitude:          place.Location.Lat,
		Longitude:         place.Location.Lng,
		Phone:             place.PhoneNumber,
		Website:           place.Website,
		Types:             entity.StringSlice(place.Types),
		Rating:            place.Rating,
		PriceLevel:        place.PriceLevel,
		InsuranceAccepted: entity.StringSlice(service.GenerateRandomInsuranceData()),
	}
	if specialty != "" {
		provider.Specialties = entity.StringSlice{specialty}
	}
	return provider
}

func mergeByPlaceID(first, second []entity.Provider) []entity.Provider {
	seen := make(map[string]bool, len(first))
	merged := make([]entity.Provider, 0, len(first)+len(second))
	for _, p := range first {
		seen[p.PlaceID] = true
		merged = append(merged, p)
	}
	for _, p := range second {
		if seen[p.PlaceID] {
			continue
		}
		seen[p.PlaceID] = true
		merged = append(merged, p)
	}
	return merged
}
