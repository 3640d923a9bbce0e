package handler

import (
	"encoding/json"
	"net/http"

	"healthspot/internal/delivery/dto"
	"healthspot/internal/gateway/googlemaps"
	"healthspot/internal/usecase"
	"healthspot/pkg/geo"
	"healthspot/pkg/response"
	"healthspot/pkg/validator"
)

type RouteHandler struct {
	routeUsecase *usecase.RouteUseCase
	validator    *validator.CustomValidator
}

func NewRouteHandler(routeUsecase *usecase.RouteUseCase, validator *validator.CustomValidator) *RouteHandler {
	return &RouteHandler{
		routeUsecase: routeUsecase,
		validator:    validator,
	}
}

// ComputeRoute answers POST /api/maps/routes, proxying the Routes API so
// the maps key stays server-side.
func (h *RouteHandler) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.ComputeRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	gwReq := googlemaps.RouteRequest{
		Origin:        toWaypoint(req.Origin),
		Destination:   toWaypoint(req.Destination),
		TravelMode:    req.TravelMode,
		Alternatives:  req.Alternatives,
		AvoidTolls:    req.AvoidTolls,
		AvoidHighways: req.AvoidHighways,
		AvoidFerries:  req.AvoidFerries,
		LanguageCode:  req.LanguageCode,
	}
	for _, wp := range req.Intermediates {
		gwReq.Intermediates = append(gwReq.Intermediates, toWaypoint(wp))
	}

	routes, err := h.routeUsecase.Compute(r.Context(), gwReq)
	if err != nil {
		switch err {
		case usecase.ErrInvalidWaypoint:
			response.Error(w, http.StatusBadRequest, "Each waypoint needs a place_id or valid lat/lng", nil)
		case usecase.ErrRouteNotFound:
			response.NotFound(w, "No route found between these points")
		case usecase.ErrSearchUnavailable:
			response.ServiceUnavailable(w, "Route computation is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to compute route")
		}
		return
	}

	resp := dto.ComputeRouteResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, route := range routes {
		routeResp := dto.RouteResponse{
			DistanceMeters:  route.DistanceMeters,
			DurationSeconds: route.DurationSeconds,
			EncodedPolyline: route.EncodedPolyline,
		}
		for _, leg := range route.Legs {
			routeResp.Legs = append(routeResp.Legs, dto.RouteLegResponse{
				DistanceMeters:  leg.DistanceMeters,
				DurationSeconds: leg.DurationSeconds,
				StartLocation:   leg.StartLocation,
				EndLocation:     leg.EndLocation,
			})
		}
		resp.Routes = append(resp.Routes, routeResp)
	}

	response.Success(w, http.StatusOK, "Routes computed successfully", resp)
}

func toWaypoint(wp dto.WaypointRequest) googlemaps.Waypoint {
	if wp.PlaceID != "" {
		return googlemaps.Waypoint{PlaceID: wp.PlaceID}
	}
	if wp.Lat != nil && wp.Lng != nil {
		return googlemaps.Waypoint{Location: &geo.LatLng{Lat: *wp.Lat, Lng: *wp.Lng}}
	}
	return googlemaps.Waypoint{}
}
