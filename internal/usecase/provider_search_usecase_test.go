package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"

	"healthspot/internal/domain/entity"
	"healthspot/internal/domain/repository"
	"healthspot/internal/gateway/googlemaps"
	"healthspot/pkg/geo"
)

type stubProviderRepo struct {
	inBounds    []entity.Provider
	inBoundsErr error
	byRef       map[string]*entity.Provider
	upserted    []entity.Provider
	updated     []entity.Provider
	upsertErr   error
}

func (s *stubProviderRepo) FindInBounds(ctx context.Context, box geo.BoundingBox, filter repository.ProviderFilter) ([]entity.Provider, error) {
	if s.inBoundsErr != nil {
		return nil, s.inBoundsErr
	}
	return s.inBounds, nil
}

func (s *stubProviderRepo) FindByPlaceID(ctx context.Context, placeID string) (*entity.Provider, error) {
	return s.byRef[placeID], nil
}

func (s *stubProviderRepo) FindByIDOrPlaceID(ctx context.Context, ref string) (*entity.Provider, error) {
	return s.byRef[ref], nil
}

func (s *stubProviderRepo) Create(ctx context.Context, provider *entity.Provider) error { return nil }

func (s *stubProviderRepo) Update(ctx context.Context, provider *entity.Provider) error {
	s.updated = append(s.updated, *provider)
	return nil
}

func (s *stubProviderRepo) UpsertByPlaceID(ctx context.Context, provider *entity.Provider) (*entity.Provider, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	if existing, ok := s.byRef[provider.PlaceID]; ok {
		return existing, nil
	}
	s.upserted = append(s.upserted, *provider)
	return provider, nil
}

type stubPlaces struct {
	configured   bool
	nearby       []googlemaps.Place
	nearbyErr    error
	nearbyCalls  int
	details      *googlemaps.Place
	detailsErr   error
	detailsCalls int
}

func (s *stubPlaces) NearbySearch(ctx context.Context, req googlemaps.NearbySearchRequest) ([]googlemaps.Place, error) {
	s.nearbyCalls++
	if s.nearbyErr != nil {
		return nil, s.nearbyErr
	}
	return s.nearby, nil
}

func (s *stubPlaces) TextSearch(ctx context.Context, req googlemaps.TextSearchRequest) ([]googlemaps.Place, error) {
	return s.nearby, s.nearbyErr
}

func (s *stubPlaces) PlaceDetails(ctx context.Context, placeID string, fields []string) (*googlemaps.Place, error) {
	s.detailsCalls++
	if s.detailsErr != nil {
		return nil, s.detailsErr
	}
	return s.details, nil
}

func (s *stubPlaces) IsConfigured() bool { return s.configured }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func cachedProviders(n int) []entity.Provider {
	providers := make([]entity.Provider, n)
	for i := range providers {
		providers[i] = entity.Provider{
			ID:        uint(i + 1),
			PlaceID:   "place-" + strconv.Itoa(i+1),
			Name:      fmt.Sprintf("Clinic %d", i+1),
			Latitude:  37.77,
			Longitude: -122.41,
			Rating:    4.0,
		}
	}
	return providers
}

func TestFindNearbyServedFromCacheAtThreshold(t *testing.T) {
	repo := &stubProviderRepo{inBounds: cachedProviders(10)}
	places := &stubPlaces{configured: true}
	uc := NewProviderSearchUseCase(quietLogger(), repo, places, 10, 5000)

	providers, err := uc.FindNearby(context.Background(), entity.SearchCriteria{Lat: 37.77, Lng: -122.41})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 10 {
		t.Fatalf("expected 10 providers, got %d", len(providers))
	}
	if places.nearbyCalls != 0 {
		t.Error("live search must not run when the cache meets the threshold")
	}
}

func TestFindNearbyBelowThresholdRunsLiveSearch(t *testing.T) {
	repo := &stubProviderRepo{inBounds: cachedProviders(9), byRef: map[string]*entity.Provider{}}
	places := &stubPlaces{
		configured: true,
		nearby: []googlemaps.Place{
			{PlaceID: "live-1", Name: "New Hospital", Location: geo.LatLng{Lat: 37.78, Lng: -122.42}, Rating: 4.5},
		},
	}
	uc := NewProviderSearchUseCase(quietLogger(), repo, places, 10, 5000)

	providers, err := uc.FindNearby(context.Background(), entity.SearchCriteria{Lat: 37.77, Lng: -122.41})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if places.nearbyCalls != 1 {
		t.Fatalf("expected one live search, got %d", places.nearbyCalls)
	}
	if len(providers) != 10 {
		t.Fatalf("expected 9 cached + 1 live = 10 providers, got %d", len(providers))
	}
	if len(repo.upserted) != 1 || repo.upserted[0].PlaceID != "live-1" {
		t.Errorf("expected the live place to be persisted, got %+v", repo.upserted)
	}
	if len(repo.upserted[0].InsuranceAccepted) == 0 {
		t.Error("new providers must get insurance data")
	}
}

func TestFindNearbyUpsertKeepsExistingRow(t *testing.T) {
	existing := &entity.Provider{ID: 42, PlaceID: "live-1", Name: "Known Clinic", Latitude: 37.78, Longitude: -122.42, Rating: 4.7}
	repo := &stubProviderRepo{byRef: map[string]*entity.Provider{"live-1": existing}}
	places := &stubPlaces{
		configured: true,
		nearby: []googlemaps.Place{
			{PlaceID: "live-1", Name: "Renamed Clinic", Location: geo.LatLng{Lat: 37.78, Lng: -122.42}},
		},
	}
	uc := NewProviderSearchUseCase(quietLogger(), repo, places, 10, 5000)

	providers, err := uc.FindNearby(context.Background(), entity.SearchCriteria{Lat: 37.77, Lng: -122.41})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(providers))
	}
	if providers[0].ID != 42 || providers[0].Name != "Known Clinic" {
		t.Errorf("expected the stored row to win, got %+v", providers[0])
	}
	if len(repo.upserted) != 0 {
		t.Error("existing rows must not be re-created")
	}
}

func TestFindNearbyInsuranceFilter(t *testing.T) {
	cached := cachedProviders(12)
	for i := range cached {
		if i%2 == 0 {
			cached[i].InsuranceAccepted = entity.StringSlice{"aetna"}
		} else {
			cached[i].InsuranceAccepted = entity.StringSlice{"cigna"}
		}
	}
	repo := &stubProviderRepo{inBounds: cached}
	places := &stubPlaces{configured: false}
	uc := NewProviderSearchUseCase(quietLogger(), repo, places, 5, 5000)

	providers, err := uc.FindNearby(context.Background(), entity.SearchCriteria{
		Lat: 37.77, Lng: -122.41, Insurance: []string{"aetna"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 6 {
		t.Fatalf("expected 6 aetna providers, got %d", len(providers))
	}
	for _, p := range providers {
		if !p.InsuranceAccepted.Contains("aetna") {
			t.Errorf("provider %s does not accept aetna", p.PlaceID)
		}
	}
}

func TestFindNearbyMinRatingFilter(t *testing.T) {
	cached := cachedProviders(3)
	cached[0].Rating = 2.0
	cached[1].Rating = 4.5
	cached[2].Rating = 3.9
	repo := &stubProviderRepo{inBounds: cached}
	uc := NewProviderSearchUseCase(quietLogger(), repo, &stubPlaces{}, 1, 5000)

	providers, err := uc.FindNearby(context.Background(), entity.SearchCriteria{
		Lat: 37.77, Lng: -122.41, MinRating: 4.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 1 || providers[0].Rating != 4.5 {
		t.Errorf("expected only the 4.5-rated provider, got %+v", providers)
	}
}

func TestFindNearbyInvalidCoordinates(t *testing.T) {
	uc := NewProviderSearchUseCase(quietLogger(), &stubProviderRepo{}, &stubPlaces{}, 10, 5000)

	_, err := uc.FindNearby(context.Background(), entity.SearchCriteria{Lat: 95, Lng: 0})
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestFindNearbyLiveFailurePropagates(t *testing.T) {
	repo := &stubProviderRepo{inBounds: cachedProviders(3)}
	places := &stubPlaces{configured: true, nearbyErr: errors.New("quota exceeded")}
	uc := NewProviderSearchUseCase(quietLogger(), repo, places, 10, 5000)

	_, err := uc.FindNearby(context.Background(), entity.SearchCriteria{Lat: 37.77, Lng: -122.41})
	if !errors.Is(err, ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestGetDetailsFetchesOnCacheMiss(t *testing.T) {
	repo := &stubProviderRepo{byRef: map[string]*entity.Provider{}}
	places := &stubPlaces{
		configured: true,
		details: &googlemaps.Place{
			PlaceID:  "abc",
			Name:     "City Hospital",
			Location: geo.LatLng{Lat: 37.77, Lng: -122.41},
		},
	}
	uc := NewProviderSearchUseCase(quietLogger(), repo, places, 10, 5000)

	provider, err := uc.GetDetails(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Name != "City Hospital" {
		t.Errorf("unexpected provider: %+v", provider)
	}
	if len(repo.upserted) != 1 {
		t.Error("fetched details must be persisted")
	}
}

func TestGetDetailsCachedWithPhoneSkipsRefetch(t *testing.T) {
	cached := &entity.Provider{ID: 7, PlaceID: "abc", Name: "City Hospital", Phone: "+14155550100"}
	repo := &stubProviderRepo{byRef: map[string]*entity.Provider{"abc": cached}}
	places := &stubPlaces{configured: true}
	uc := NewProviderSearchUseCase(quietLogger(), repo, places, 10, 5000)

	provider, err := uc.GetDetails(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.ID != 7 {
		t.Errorf("expected the cached row, got %+v", provider)
	}
	if places.detailsCalls != 0 {
		t.Error("a cached row with a phone number must not be refetched")
	}
}

func TestGetDetailsBackfillsMissingContact(t *testing.T) {
	cached := &entity.Provider{ID: 7, PlaceID: "abc", Name: "City Hospital"}
	repo := &stubProviderRepo{byRef: map[string]*entity.Provider{"abc": cached}}
	places := &stubPlaces{
		configured: true,
		details: &googlemaps.Place{
			PlaceID:     "abc",
			PhoneNumber: "+14155550100",
			Website:     "https://cityhospital.example",
		},
	}
	uc := NewProviderSearchUseCase(quietLogger(), repo, places, 10, 5000)

	provider, err := uc.GetDetails(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Phone != "+14155550100" || provider.Website != "https://cityhospital.example" {
		t.Errorf("expected contact fields backfilled, got %+v", provider)
	}
	if places.detailsCalls != 1 {
		t.Fatalf("expected one details call, got %d", places.detailsCalls)
	}
	if len(repo.updated) != 1 {
		t.Error("backfilled contact fields must be persisted")
	}
}

func TestGetDetailsNotFound(t *testing.T) {
	repo := &stubProviderRepo{byRef: map[string]*entity.Provider{}}
	places := &stubPlaces{configured: true, detailsErr: googlemaps.ErrZeroResults}
	uc := NewProviderSearchUseCase(quietLogger(), repo, places, 10, 5000)

	_, err := uc.GetDetails(context.Background(), "missing")
	if !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}
