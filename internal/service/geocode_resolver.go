package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"healthspot/internal/domain/entity"
	"healthspot/internal/gateway/googlemaps"
	"healthspot/internal/gateway/nominatim"
	"healthspot/internal/gateway/postcodesio"
	"healthspot/internal/metrics"
	"healthspot/pkg/geo"
)

// FallbackCoordinates maps ISO country codes to an approximate country
// centroid, used when every geocoding strategy fails. The DEFAULT entry is
// the last resort for unknown countries.
var FallbackCoordinates = map[string]entity.GeocodeResult{
	"US":      {Lat: 39.8333333, Lng: -98.585522, FormattedAddress: "United States", Approximate: true},
	"IN":      {Lat: 20.593684, Lng: 78.96288, FormattedAddress: "India", Approximate: true},
	"GB":      {Lat: 55.378051, Lng: -3.435973, FormattedAddress: "United Kingdom", Approximate: true},
	"CA":      {Lat: 56.130366, Lng: -106.346771, FormattedAddress: "Canada", Approximate: true},
	"AU":      {Lat: -25.274398, Lng: 133.775136, FormattedAddress: "Australia", Approximate: true},
	"BR":      {Lat: -14.235004, Lng: -51.92528, FormattedAddress: "Brazil", Approximate: true},
	"MX":      {Lat: 23.634501, Lng: -102.552784, FormattedAddress: "Mexico", Approximate: true},
	"ZA":      {Lat: -30.559482, Lng: 22.937506, FormattedAddress: "South Africa", Approximate: true},
	"NG":      {Lat: 9.081999, Lng: 8.675277, FormattedAddress: "Nigeria", Approximate: true},
	"KE":      {Lat: -0.023559, Lng: 37.906193, FormattedAddress: "Kenya", Approximate: true},
	"DEFAULT": {Lat: 0, Lng: 0, FormattedAddress: "Unknown", Approximate: true},
}

// countryNames feeds the country-name-in-address strategy, which works around
// geocoder quirks where a component filter fails but a plain-text country
// name succeeds.
var countryNames = map[string]string{
	"US": "USA",
	"IN": "India",
	"GB": "United Kingdom",
	"CA": "Canada",
	"AU": "Australia",
	"BR": "Brazil",
	"MX": "Mexico",
	"ZA": "South Africa",
	"NG": "Nigeria",
	"KE": "Kenya",
	"DE": "Germany",
	"FR": "France",
	"IT": "Italy",
	"ES": "Spain",
	"JP": "Japan",
	"CN": "China",
}

// Geocoder is the slice of the maps gateway the resolver needs.
type Geocoder interface {
	Geocode(ctx context.Context, req googlemaps.GeocodeRequest) ([]googlemaps.GeocodeResult, error)
	IsConfigured() bool
}

// PostcodeLookup covers the postcodes.io fallback.
type PostcodeLookup interface {
	Lookup(ctx context.Context, postcode string) (*postcodesio.Result, error)
}

// NominatimSearcher covers the OpenStreetMap fallback.
type NominatimSearcher interface {
	SearchPostalCode(ctx context.Context, postalCode, country string) ([]nominatim.Result, error)
}

// GeocodeResolver resolves a postal code plus country code to coordinates by
// trying an ordered chain of strategies and returning the first valid hit.
// Country centroids are the fallback when every strategy misses; callers can
// tell by the Approximate flag.
type GeocodeResolver struct {
	Log       *logrus.Logger
	Maps      Geocoder
	Postcodes PostcodeLookup
	Nominatim NominatimSearcher
	Redis     *redis.Client
	CacheTTL  time.Duration
}

func NewGeocodeResolver(log *logrus.Logger, maps Geocoder, postcodes PostcodeLookup, osm NominatimSearcher, redisClient *redis.Client, cacheTTL time.Duration) *GeocodeResolver {
	return &GeocodeResolver{
		Log:       log,
		Maps:      maps,
		Postcodes: postcodes,
		Nominatim: osm,
		Redis:     redisClient,
		CacheTTL:  cacheTTL,
	}
}

type strategy struct {
	name string
	run  func(ctx context.Context, postalCode, country string) (*entity.GeocodeResult, error)
}

// Resolve turns a postal code and ISO country code into coordinates. It never
// returns an error to the caller for "not found": the country centroid (or
// the zero coordinate for unknown countries) is returned instead, flagged as
// approximate.
func (r *GeocodeResolver) Resolve(ctx context.Context, postalCode, country string) *entity.GeocodeResult {
	postalCode = cleanPostalCode(postalCode)
	country = strings.ToUpper(strings.TrimSpace(country))

	if postalCode == "" {
		return r.fallback(country)
	}

	if cached := r.cacheGet(ctx, postalCode, country); cached != nil {
		return cached
	}

	strategies := []strategy{
		{"region-specific", r.regionSpecific},
		{"country-component", r.countryComponent},
		{"country-name", r.countryNameInAddress},
		{"direct", r.direct},
		{"keyword", r.keyword},
		{"prefix", r.prefix},
		{"postcodesio", r.postcodesIO},
		{"nominatim", r.nominatimSearch},
	}

	for _, s := range strategies {
		result, err := s.run(ctx, postalCode, country)
		if err != nil {
			metrics.GeocodeAttemptsTotal.WithLabelValues(s.name, "error").Inc()
			r.Log.WithError(err).WithFields(logrus.Fields{
				"strategy":    s.name,
				"postal_code": postalCode,
				"country":     country,
			}).Warn("geocode strategy failed")
			continue
		}
		if result == nil {
			metrics.GeocodeAttemptsTotal.WithLabelValues(s.name, "miss").Inc()
			continue
		}
		if !geo.IsValidCoordinates(result.Lat, result.Lng) {
			metrics.GeocodeAttemptsTotal.WithLabelValues(s.name, "miss").Inc()
			r.Log.WithFields(logrus.Fields{
				"strategy": s.name,
				"lat":      result.Lat,
				"lng":      result.Lng,
			}).Warn("geocode strategy returned invalid coordinates")
			continue
		}

		metrics.GeocodeAttemptsTotal.WithLabelValues(s.name, "hit").Inc()
		if result.Source == "" {
			result.Source = s.name
		}
		r.Log.WithFields(logrus.Fields{
			"strategy":    s.name,
			"postal_code": postalCode,
			"country":     country,
			"lat":         result.Lat,
			"lng":         result.Lng,
		}).Info("postal code resolved")

		r.cacheSet(ctx, postalCode, country, result)
		return result
	}

	r.Log.WithFields(logrus.Fields{
		"postal_code": postalCode,
		"country":     country,
	}).Warn("all geocode strategies failed, using country centroid")
	return r.fallback(country)
}

// cleanPostalCode strips whitespace, dashes and dots so "110 016", "110-016"
// and "110016" all resolve the same.
func cleanPostalCode(postalCode string) string {
	cleaned := strings.Map(func(ch rune) rune {
		switch ch {
		case ' ', '\t', '-', '.':
			return -1
		}
		return ch
	}, postalCode)
	return strings.TrimSpace(cleaned)
}

// SourceCountryCentroid tags results produced by the static fallback table
// rather than a geocoding service.
const SourceCountryCentroid = "country-centroid"

func (r *GeocodeResolver) fallback(country string) *entity.GeocodeResult {
	if result, ok := FallbackCoordinates[country]; ok {
		result.Source = SourceCountryCentroid
		return &result
	}
	result := FallbackCoordinates["DEFAULT"]
	result.Source = SourceCountryCentroid
	return &result
}

// regionSpecific handles countries whose postal formats trip up a plain
// geocode query. US ZIPs are zero-padded to five digits; Indian PINs must be
// exactly six digits.
func (r *GeocodeResolver) regionSpecific(ctx context.Context, postalCode, country string) (*entity.GeocodeResult, error) {
	if !r.Maps.IsConfigured() {
		return nil, nil
	}

	switch country {
	case "US":
		zip := postalCode
		for len(zip) < 5 {
			zip = "0" + zip
		}
		if len(zip) != 5 || !isDigits(zip) {
			return nil, nil
		}
		result, err := r.geocodeFirst(ctx, googlemaps.GeocodeRequest{
			Address:    zip + ", USA",
			Components: "country:US",
		})
		if result != nil {
			result.Source = "region-specific-US"
		}
		return result, err
	case "IN":
		if len(postalCode) != 6 || !isDigits(postalCode) {
			return nil, nil
		}
		result, err := r.geocodeFirst(ctx, googlemaps.GeocodeRequest{
			Address:    postalCode + ", India",
			Components: "country:IN",
		})
		if result != nil {
			result.Source = "region-specific-IN"
		}
		return result, err
	}
	return nil, nil
}

func (r *GeocodeResolver) countryComponent(ctx context.Context, postalCode, country string) (*entity.GeocodeResult, error) {
	if !r.Maps.IsConfigured() || country == "" {
		return nil, nil
	}
	return r.geocodeFirst(ctx, googlemaps.GeocodeRequest{
		Address:    postalCode,
		Components: fmt.Sprintf("country:%s|postal_code:%s", country, postalCode),
	})
}

func (r *GeocodeResolver) countryNameInAddress(ctx context.Context, postalCode, country string) (*entity.GeocodeResult, error) {
	if !r.Maps.IsConfigured() {
		return nil, nil
	}
	name, ok := countryNames[country]
	if !ok {
		return nil, nil
	}
	return r.geocodeFirst(ctx, googlemaps.GeocodeRequest{
		Address: postalCode + ", " + name,
	})
}

func (r *GeocodeResolver) direct(ctx context.Context, postalCode, _ string) (*entity.GeocodeResult, error) {
	if !r.Maps.IsConfigured() {
		return nil, nil
	}
	return r.geocodeFirst(ctx, googlemaps.GeocodeRequest{Address: postalCode})
}

// keyword retries with a "postal code" qualifier in the address, which some
// geocoder responses need to disambiguate bare numeric codes.
func (r *GeocodeResolver) keyword(ctx context.Context, postalCode, country string) (*entity.GeocodeResult, error) {
	if !r.Maps.IsConfigured() {
		return nil, nil
	}
	req := googlemaps.GeocodeRequest{Address: "postal code " + postalCode}
	if country != "" {
		req.Components = "country:" + country
	}
	return r.geocodeFirst(ctx, req)
}

// prefix retries with the first three characters, which often lands in the
// right district when the full code is unknown to the geocoder.
func (r *GeocodeResolver) prefix(ctx context.Context, postalCode, country string) (*entity.GeocodeResult, error) {
	if !r.Maps.IsConfigured() || len(postalCode) <= 3 {
		return nil, nil
	}
	req := googlemaps.GeocodeRequest{Address: postalCode[:3]}
	if country != "" {
		req.Components = "country:" + country
	}
	result, err := r.geocodeFirst(ctx, req)
	if result != nil {
		result.Approximate = true
	}
	return result, err
}

func (r *GeocodeResolver) postcodesIO(ctx context.Context, postalCode, country string) (*entity.GeocodeResult, error) {
	if r.Postcodes == nil || country != "GB" {
		return nil, nil
	}
	result, err := r.Postcodes.Lookup(ctx, postalCode)
	if err != nil || result == nil {
		return nil, err
	}
	return &entity.GeocodeResult{
		Lat:              result.Latitude,
		Lng:              result.Longitude,
		FormattedAddress: result.Postcode + ", " + result.AdminDistrict,
	}, nil
}

func (r *GeocodeResolver) nominatimSearch(ctx context.Context, postalCode, country string) (*entity.GeocodeResult, error) {
	if r.Nominatim == nil {
		return nil, nil
	}
	results, err := r.Nominatim.SearchPostalCode(ctx, postalCode, strings.ToLower(country))
	if err != nil || len(results) == 0 {
		return nil, err
	}
	return &entity.GeocodeResult{
		Lat:              results[0].Latitude,
		Lng:              results[0].Longitude,
		FormattedAddress: results[0].DisplayName,
	}, nil
}

func (r *GeocodeResolver) geocodeFirst(ctx context.Context, req googlemaps.GeocodeRequest) (*entity.GeocodeResult, error) {
	results, err := r.Maps.Geocode(ctx, req)
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "error").Inc()
		return nil, err
	}
	metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "ok").Inc()
	if len(results) == 0 {
		return nil, nil
	}
	return &entity.GeocodeResult{
		Lat:              results[0].Location.Lat,
		Lng:              results[0].Location.Lng,
		FormattedAddress: results[0].FormattedAddress,
	}, nil
}

func (r *GeocodeResolver) cacheKey(postalCode, country string) string {
	return fmt.Sprintf("geocode:%s:%s", country, postalCode)
}

func (r *GeocodeResolver) cacheGet(ctx context.Context, postalCode, country string) *entity.GeocodeResult {
	if r.Redis == nil {
		return nil
	}
	raw, err := r.Redis.Get(ctx, r.cacheKey(postalCode, country)).Result()
	if err != nil {
		return nil
	}
	var result entity.GeocodeResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (r *GeocodeResolver) cacheSet(ctx context.Context, postalCode, country string, result *entity.GeocodeResult) {
	if r.Redis == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := r.Redis.Set(ctx, r.cacheKey(postalCode, country), raw, r.CacheTTL).Err(); err != nil {
		r.Log.WithError(err).Warn("failed to cache geocode result")
	}
}

func isDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
