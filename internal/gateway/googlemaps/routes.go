package googlemaps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"healthspot/pkg/geo"
)

// Waypoint addresses a point either by place ID or by coordinates.
type Waypoint struct {
	PlaceID  string
	Location *geo.LatLng
}

type RouteRequest struct {
	Origin        Waypoint
	Destination   Waypoint
	Intermediates []Waypoint
	TravelMode    string
	Alternatives  bool
	AvoidTolls    bool
	AvoidHighways bool
	AvoidFerries  bool
	LanguageCode  string
}

type Route struct {
	DistanceMeters  int
	DurationSeconds int
	EncodedPolyline string
	Legs            []RouteLeg
}

type RouteLeg struct {
	DistanceMeters  int
	DurationSeconds int
	StartLocation   geo.LatLng
	EndLocation     geo.LatLng
}

type routesWaypoint struct {
	PlaceID  string          `json:"placeId,omitempty"`
	Location *routesLocation `json:"location,omitempty"`
}

type routesLocation struct {
	LatLng struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"latLng"`
}

func toRoutesWaypoint(w Waypoint) routesWaypoint {
	if w.PlaceID != "" {
		return routesWaypoint{PlaceID: w.PlaceID}
	}
	loc := &routesLocation{}
	loc.LatLng.Latitude = w.Location.Lat
	loc.LatLng.Longitude = w.Location.Lng
	return routesWaypoint{Location: loc}
}

type computeRoutesRequest struct {
	Origin                   routesWaypoint   `json:"origin"`
	Destination              routesWaypoint   `json:"destination"`
	Intermediates            []routesWaypoint `json:"intermediates,omitempty"`
	TravelMode               string           `json:"travelMode"`
	RoutingPreference        string           `json:"routingPreference,omitempty"`
	ComputeAlternativeRoutes bool             `json:"computeAlternativeRoutes"`
	RouteModifiers           struct {
		AvoidTolls    bool `json:"avoidTolls"`
		AvoidHighways bool `json:"avoidHighways"`
		AvoidFerries  bool `json:"avoidFerries"`
	} `json:"routeModifiers"`
	LanguageCode string `json:"languageCode,omitempty"`
	Units        string `json:"units"`
}

type computeRoutesResponse struct {
	Routes []struct {
		DistanceMeters int    `json:"distanceMeters"`
		Duration       string `json:"duration"`
		Polyline       struct {
			EncodedPolyline string `json:"encodedPolyline"`
		} `json:"polyline"`
		Legs []struct {
			DistanceMeters int    `json:"distanceMeters"`
			Duration       string `json:"duration"`
			StartLocation  struct {
				LatLng struct {
					Latitude  float64 `json:"latitude"`
					Longitude float64 `json:"longitude"`
				} `json:"latLng"`
			} `json:"startLocation"`
			EndLocation struct {
				LatLng struct {
					Latitude  float64 `json:"latitude"`
					Longitude float64 `json:"longitude"`
				} `json:"latLng"`
			} `json:"endLocation"`
		} `json:"legs"`
	} `json:"routes"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// parseDuration converts the Routes API duration encoding ("123s") to
// seconds.
func parseDuration(d string) int {
	seconds, err := strconv.Atoi(strings.TrimSuffix(d, "s"))
	if err != nil {
		return 0
	}
	return seconds
}

// ComputeRoutes calls the Routes API (the successor of the legacy Directions
// API). The first route is the primary one; additional entries are
// alternatives when requested.
func (c *Client) ComputeRoutes(ctx context.Context, req RouteRequest) ([]Route, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	body := computeRoutesRequest{
		Origin:                   toRoutesWaypoint(req.Origin),
		Destination:              toRoutesWaypoint(req.Destination),
		TravelMode:               req.TravelMode,
		ComputeAlternativeRoutes: req.Alternatives,
		LanguageCode:             req.LanguageCode,
		Units:                    "METRIC",
	}
	if body.TravelMode == "" {
		body.TravelMode = "DRIVE"
	}
	if body.TravelMode == "DRIVE" {
		body.RoutingPreference = "TRAFFIC_AWARE"
	}
	body.RouteModifiers.AvoidTolls = req.AvoidTolls
	body.RouteModifiers.AvoidHighways = req.AvoidHighways
	body.RouteModifiers.AvoidFerries = req.AvoidFerries
	for _, w := range req.Intermediates {
		body.Intermediates = append(body.Intermediates, toRoutesWaypoint(w))
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.RoutesURL+"/directions/v2:computeRoutes", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.APIKey)
	httpReq.Header.Set("X-Goog-FieldMask", strings.Join([]string{
		"routes.duration",
		"routes.distanceMeters",
		"routes.polyline.encodedPolyline",
		"routes.legs",
	}, ","))

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("googlemaps: routes request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("googlemaps: failed to read routes response: %w", err)
	}

	var parsed computeRoutesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("googlemaps: failed to decode routes response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error.Message != "" {
			return nil, fmt.Errorf("googlemaps: routes API error: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("googlemaps: routes API returned status %d", resp.StatusCode)
	}
	if len(parsed.Routes) == 0 {
		return nil, ErrZeroResults
	}

	routes := make([]Route, 0, len(parsed.Routes))
	for _, r := range parsed.Routes {
		route := Route{
			DistanceMeters:  r.DistanceMeters,
			DurationSeconds: parseDuration(r.Duration),
			EncodedPolyline: r.Polyline.EncodedPolyline,
		}
		for _, leg := range r.Legs {
			route.Legs = append(route.Legs, RouteLeg{
				DistanceMeters:  leg.DistanceMeters,
				DurationSeconds: parseDuration(leg.Duration),
				StartLocation:   geo.LatLng{Lat: leg.StartLocation.LatLng.Latitude, Lng: leg.StartLocation.LatLng.Longitude},
				EndLocation:     geo.LatLng{Lat: leg.EndLocation.LatLng.Latitude, Lng: leg.EndLocation.LatLng.Longitude},
			})
		}
		routes = append(routes, route)
	}
	return routes, nil
}
