package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"healthspot/internal/domain/entity"
	"healthspot/internal/domain/repository"
	"healthspot/internal/gateway/googlemaps"
	"healthspot/internal/service"
	"healthspot/internal/usecase"
	"healthspot/pkg/geo"
	"healthspot/pkg/validator"
)

// fixedProviderRepo serves a canned result set for any bounding box.
type fixedProviderRepo struct {
	providers []entity.Provider
}

func (f *fixedProviderRepo) FindInBounds(ctx context.Context, box geo.BoundingBox, filter repository.ProviderFilter) ([]entity.Provider, error) {
	return f.providers, nil
}

func (f *fixedProviderRepo) FindByPlaceID(ctx context.Context, placeID string) (*entity.Provider, error) {
	return nil, nil
}

func (f *fixedProviderRepo) FindByIDOrPlaceID(ctx context.Context, ref string) (*entity.Provider, error) {
	return nil, nil
}

func (f *fixedProviderRepo) Create(ctx context.Context, provider *entity.Provider) error { return nil }

func (f *fixedProviderRepo) Update(ctx context.Context, provider *entity.Provider) error { return nil }

func (f *fixedProviderRepo) UpsertByPlaceID(ctx context.Context, provider *entity.Provider) (*entity.Provider, error) {
	return provider, nil
}

func quietTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// The no-input and bad-input paths never reach the search usecase, so the
// handler can be exercised with nil collaborators.
func validationOnlyHandler() *MapHandler {
	return NewMapHandler(nil, nil, nil, nil, validator.NewValidator())
}

func TestSearchProvidersRequiresLocationInput(t *testing.T) {
	h := validationOnlyHandler()

	req := httptest.NewRequest("GET", "/api/maps/search", nil)
	rr := httptest.NewRecorder()
	h.SearchProviders(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["success"] != false {
		t.Error("expected success=false")
	}
}

func TestSearchProvidersRejectsMalformedParams(t *testing.T) {
	h := validationOnlyHandler()

	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric lat", "lat=abc&lng=1"},
		{"non-numeric radius", "lat=37.77&lng=-122.41&radius=huge"},
		{"non-numeric min_rating", "lat=37.77&lng=-122.41&min_rating=high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/maps/search?"+tt.query, nil)
			rr := httptest.NewRecorder()
			h.SearchProviders(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestSearchProvidersRejectsOutOfRangeValues(t *testing.T) {
	h := validationOnlyHandler()

	tests := []struct {
		name  string
		query string
	}{
		{"latitude out of range", "lat=95&lng=0"},
		{"radius too large", "lat=37.77&lng=-122.41&radius=999999"},
		{"bad country code", "pincode=94103&country=USA1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/maps/search?"+tt.query, nil)
			rr := httptest.NewRecorder()
			h.SearchProviders(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestSearchProvidersUnresolvablePincodeWithCountryWarns(t *testing.T) {
	// Every geocode strategy misses, so the resolver falls back to the US
	// centroid. With the country hint present the search still runs there
	// and the response carries a warning instead of failing.
	maps := googlemaps.NewClient("")
	resolver := service.NewGeocodeResolver(quietTestLogger(), maps, nil, nil, nil, 0)
	repo := &fixedProviderRepo{providers: []entity.Provider{
		{ID: 1, PlaceID: "p1", Name: "Prairie Clinic", Latitude: 39.83, Longitude: -98.59, Rating: 4.2},
	}}
	searchUC := usecase.NewProviderSearchUseCase(quietTestLogger(), repo, maps, 10, 5000)
	h := NewMapHandler(searchUC, nil, resolver, maps, validator.NewValidator())

	req := httptest.NewRequest("GET", "/api/maps/search?pincode=99999&country=US", nil)
	rr := httptest.NewRecorder()
	h.SearchProviders(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with a country hint, got %d", rr.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	warning, _ := body["warning"].(string)
	if warning == "" {
		t.Error("expected a warning about the approximate location")
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected a data object, got %v", body["data"])
	}
	if data["approximate"] != true {
		t.Error("expected approximate=true in the response")
	}
	if suggestions, ok := data["suggestions"].([]interface{}); !ok || len(suggestions) == 0 {
		t.Error("expected remediation suggestions alongside the warning")
	}
	providers, ok := data["providers"].([]interface{})
	if !ok || len(providers) != 1 {
		t.Errorf("expected the centroid-area search to run, got %v", data["providers"])
	}
}

func TestSearchProvidersUnresolvablePincodeWithoutCountry(t *testing.T) {
	// An unconfigured maps client makes every geocode strategy miss, so the
	// resolver can only offer the unknown-country centroid.
	resolver := service.NewGeocodeResolver(quietTestLogger(), googlemaps.NewClient(""), nil, nil, nil, 0)
	h := NewMapHandler(nil, nil, resolver, nil, validator.NewValidator())

	req := httptest.NewRequest("GET", "/api/maps/search?pincode=99999", nil)
	rr := httptest.NewRecorder()
	h.SearchProviders(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a country hint, got %d", rr.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	detail, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected an error detail object, got %v", body["error"])
	}
	if _, ok := detail["suggestions"]; !ok {
		t.Error("expected remediation suggestions")
	}
}

func TestParseSearchRequestInsuranceList(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/maps/search?insurance=aetna,%20cigna,,medicare", nil)

	parsed, err := parseSearchRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Insurance) != 3 {
		t.Fatalf("expected 3 payers, got %v", parsed.Insurance)
	}
	if parsed.Insurance[0] != "aetna" || parsed.Insurance[1] != "cigna" || parsed.Insurance[2] != "medicare" {
		t.Errorf("unexpected list: %v", parsed.Insurance)
	}
}
