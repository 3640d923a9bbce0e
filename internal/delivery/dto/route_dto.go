package dto

import "healthspot/pkg/geo"

// Request DTOs

type WaypointRequest struct {
	PlaceID string   `json:"place_id" validate:"omitempty,max=255"`
	Lat     *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng     *float64 `json:"lng" validate:"omitempty,longitude"`
}

type ComputeRouteRequest struct {
	Origin        WaypointRequest   `json:"origin" validate:"required"`
	Destination   WaypointRequest   `json:"destination" validate:"required"`
	Intermediates []WaypointRequest `json:"intermediates" validate:"omitempty,max=10,dive"`
	TravelMode    string            `json:"travel_mode" validate:"omitempty,oneof=DRIVE WALK BICYCLE TRANSIT TWO_WHEELER"`
	Alternatives  bool              `json:"alternatives"`
	AvoidTolls    bool              `json:"avoid_tolls"`
	AvoidHighways bool              `json:"avoid_highways"`
	AvoidFerries  bool              `json:"avoid_ferries"`
	LanguageCode  string            `json:"language_code" validate:"omitempty,max=10"`
}

// Response DTOs

type RouteLegResponse struct {
	DistanceMeters  int        `json:"distance_meters"`
	DurationSeconds int        `json:"duration_seconds"`
	StartLocation   geo.LatLng `json:"start_location"`
	EndLocation     geo.LatLng `json:"end_location"`
}

type RouteResponse struct {
	DistanceMeters  int                `json:"distance_meters"`
	DurationSeconds int                `json:"duration_seconds"`
	EncodedPolyline string             `json:"encoded_polyline"`
	Legs            []RouteLegResponse `json:"legs,omitempty"`
}

type ComputeRouteResponse struct {
	Routes []RouteResponse `json:"routes"`
}
