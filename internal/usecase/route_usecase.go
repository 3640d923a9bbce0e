package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"healthspot/internal/gateway/googlemaps"
	"healthspot/internal/metrics"
	"healthspot/pkg/geo"
)

var (
	ErrRouteNotFound   = errors.New("no route found")
	ErrInvalidWaypoint = errors.New("invalid waypoint")
)

// RoutesAPI is the slice of the maps gateway the route usecase needs.
type RoutesAPI interface {
	ComputeRoutes(ctx context.Context, req googlemaps.RouteRequest) ([]googlemaps.Route, error)
	IsConfigured() bool
}

// RouteUseCase proxies directions requests to the Routes API so the browser
// never sees the maps key.
type RouteUseCase struct {
	Log    *logrus.Logger
	Routes RoutesAPI
}

func NewRouteUseCase(log *logrus.Logger, routes RoutesAPI) *RouteUseCase {
	return &RouteUseCase{Log: log, Routes: routes}
}

// Compute validates the waypoints and returns the routes between them.
func (u *RouteUseCase) Compute(ctx context.Context, req googlemaps.RouteRequest) ([]googlemaps.Route, error) {
	if !validWaypoint(req.Origin) || !validWaypoint(req.Destination) {
		return nil, ErrInvalidWaypoint
	}
	for _, w := range req.Intermediates {
		if !validWaypoint(w) {
			return nil, ErrInvalidWaypoint
		}
	}
	if !u.Routes.IsConfigured() {
		return nil, ErrSearchUnavailable
	}

	routes, err := u.Routes.ComputeRoutes(ctx, req)
	if err != nil {
		if errors.Is(err, googlemaps.ErrZeroResults) {
			metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "ok").Inc()
			return nil, ErrRouteNotFound
		}
		metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "error").Inc()
		u.Log.WithError(err).Error("route computation failed")
		return nil, err
	}
	metrics.ExternalCallsTotal.WithLabelValues("googlemaps", "ok").Inc()
	return routes, nil
}

func validWaypoint(w googlemaps.Waypoint) bool {
	if w.PlaceID != "" {
		return true
	}
	return w.Location != nil && geo.IsValidCoordinates(w.Location.Lat, w.Location.Lng)
}
