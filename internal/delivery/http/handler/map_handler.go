package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"healthspot/internal/converter"
	"healthspot/internal/delivery/dto"
	"healthspot/internal/delivery/http/middleware"
	"healthspot/internal/domain/entity"
	"healthspot/internal/service"
	"healthspot/internal/usecase"
	"healthspot/pkg/geo"
	"healthspot/pkg/response"
	"healthspot/pkg/validator"
)

// StaticMapper builds a fallback map image URL for clients without an
// interactive map.
type StaticMapper interface {
	StaticMapURL(center geo.LatLng, markers []geo.LatLng, zoom, width, height int) string
}

type MapHandler struct {
	searchUsecase *usecase.ProviderSearchUseCase
	userUsecase   *usecase.UserUseCase
	resolver      *service.GeocodeResolver
	staticMap     StaticMapper
	validator     *validator.CustomValidator
}

func NewMapHandler(searchUsecase *usecase.ProviderSearchUseCase, userUsecase *usecase.UserUseCase, resolver *service.GeocodeResolver, staticMap StaticMapper, validator *validator.CustomValidator) *MapHandler {
	return &MapHandler{
		searchUsecase: searchUsecase,
		userUsecase:   userUsecase,
		resolver:      resolver,
		staticMap:     staticMap,
		validator:     validator,
	}
}

// SearchProviders answers GET /api/maps/search. Location comes from
// coordinates, a pincode, or a free-text query; at least one is required.
func (h *MapHandler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hasCoords := req.Lat != nil && req.Lng != nil
	if !hasCoords && req.Pincode == "" && req.Query == "" {
		response.Error(w, http.StatusBadRequest, "Provide lat/lng, a pincode, or a search query", nil)
		return
	}

	if !hasCoords && req.Pincode == "" {
		h.searchByText(w, r, req)
		return
	}

	criteria := entity.SearchCriteria{
		Radius:     req.Radius,
		Type:       req.Type,
		Specialty:  req.Specialty,
		PriceRange: req.PriceRange,
		Insurance:  req.Insurance,
		MinRating:  req.MinRating,
	}

	var warning string
	var suggestions []string
	approximate := false

	if hasCoords {
		criteria.Lat = *req.Lat
		criteria.Lng = *req.Lng
	} else {
		resolved := h.resolver.Resolve(r.Context(), req.Pincode, req.Country)
		if resolved.Source == service.SourceCountryCentroid && req.Country == "" {
			// Without a country hint there is no usable centroid to fall
			// back on.
			response.Error(w, http.StatusBadRequest, "Could not locate this postal code", map[string]interface{}{
				"suggestions": []string{
					"Check the postal code for typos",
					"Include the two-letter country code",
					"Search by city name instead",
				},
			})
			return
		}
		criteria.Lat = resolved.Lat
		criteria.Lng = resolved.Lng
		if resolved.Approximate {
			approximate = true
			warning = "Could not locate this postal code precisely; showing results near " + resolved.FormattedAddress
			suggestions = []string{
				"Check the postal code for typos",
				"Search by city name instead",
			}
		}
	}

	providers, err := h.searchUsecase.FindNearby(r.Context(), criteria)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCoordinates:
			response.Error(w, http.StatusBadRequest, "Invalid coordinates", nil)
		case usecase.ErrSearchUnavailable:
			response.ServiceUnavailable(w, "Provider search is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to search providers")
		}
		return
	}

	if anonymousID, ok := middleware.GetAnonymousIDFromContext(r.Context()); ok {
		h.userUsecase.RecordSearch(r.Context(), anonymousID, criteria, len(providers))
	}

	data := h.buildSearchResponse(providers, geo.LatLng{Lat: criteria.Lat, Lng: criteria.Lng})
	data.Approximate = approximate
	data.Suggestions = suggestions

	if warning != "" {
		response.SuccessWithWarning(w, http.StatusOK, "Providers retrieved successfully", warning, data)
		return
	}
	response.Success(w, http.StatusOK, "Providers retrieved successfully", data)
}

func (h *MapHandler) searchByText(w http.ResponseWriter, r *http.Request, req *dto.SearchProvidersRequest) {
	providers, err := h.searchUsecase.SearchByText(r.Context(), req.Query, req.Type)
	if err != nil {
		if err == usecase.ErrSearchUnavailable {
			response.ServiceUnavailable(w, "Provider search is temporarily unavailable")
			return
		}
		response.InternalServerError(w, "Failed to search providers")
		return
	}

	center := geo.LatLng{}
	points := providerPoints(providers)
	if bounds := geo.BoundsOf(points); bounds != nil {
		center = geo.LatLng{
			Lat: (bounds.North + bounds.South) / 2,
			Lng: (bounds.East + bounds.West) / 2,
		}
	}

	response.Success(w, http.StatusOK, "Providers retrieved successfully", h.buildSearchResponse(providers, center))
}

func (h *MapHandler) buildSearchResponse(providers []entity.Provider, center geo.LatLng) *dto.SearchProvidersResponse {
	points := providerPoints(providers)
	return &dto.SearchProvidersResponse{
		Providers: converter.ProvidersToResponses(providers),
		Count:     len(providers),
		Center:    center,
		Bounds:    geo.BoundsOf(points),
		MapURL:    h.staticMap.StaticMapURL(center, points, 13, 600, 400),
	}
}

// GetProvider answers GET /api/maps/providers/{id}, accepting either a local
// id or a Google place id.
func (h *MapHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["id"]

	provider, err := h.searchUsecase.GetDetails(r.Context(), ref)
	if err != nil {
		if err == usecase.ErrProviderNotFound {
			response.NotFound(w, "Provider not found")
			return
		}
		response.InternalServerError(w, "Failed to get provider")
		return
	}

	response.Success(w, http.StatusOK, "Provider retrieved successfully", converter.ProviderToResponse(provider))
}

// GetConfig answers GET /api/maps/config so the frontend can tell whether
// live maps features are available before rendering.
func (h *MapHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Map configuration retrieved successfully", dto.MapConfigResponse{
		MapsEnabled:   h.searchUsecase.Places.IsConfigured(),
		DefaultRadius: h.searchUsecase.DefaultRadius,
	})
}

// GetInsuranceProviders answers GET /api/maps/insurance-providers with the
// payer catalog used for search filtering.
func (h *MapHandler) GetInsuranceProviders(w http.ResponseWriter, r *http.Request) {
	payers := make([]dto.InsuranceProviderResponse, len(service.InsuranceProviders))
	for i, p := range service.InsuranceProviders {
		payers[i] = dto.InsuranceProviderResponse{ID: p.ID, Name: p.Name}
	}
	response.Success(w, http.StatusOK, "Insurance providers retrieved successfully", payers)
}

func providerPoints(providers []entity.Provider) []geo.LatLng {
	points := make([]geo.LatLng, 0, len(providers))
	for _, p := range providers {
		points = append(points, geo.LatLng{Lat: p.Latitude, Lng: p.Longitude})
	}
	return points
}

func parseSearchRequest(r *http.Request) (*dto.SearchProvidersRequest, error) {
	q := r.URL.Query()
	req := &dto.SearchProvidersRequest{
		Pincode:   strings.TrimSpace(q.Get("pincode")),
		Country:   strings.ToUpper(strings.TrimSpace(q.Get("country"))),
		Query:     strings.TrimSpace(q.Get("query")),
		Type:      q.Get("type"),
		Specialty: q.Get("specialty"),
	}

	if raw := q.Get("lat"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		req.Lat = &lat
	}
	if raw := q.Get("lng"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		req.Lng = &lng
	}
	if raw := q.Get("radius"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Radius = radius
	}
	if raw := q.Get("price_range"); raw != "" {
		priceRange, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.PriceRange = priceRange
	}
	if raw := q.Get("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		req.MinRating = minRating
	}
	if raw := q.Get("insurance"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.Insurance = append(req.Insurance, id)
			}
		}
	}
	return req, nil
}
