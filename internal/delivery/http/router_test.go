package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// Route matching never invokes handlers or middleware, so the table can be
// checked against a router wired with nil collaborators.
func setupTestRouter() *mux.Router {
	r := NewRouter(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	return r.Setup()
}

func TestRouterMatchesDeclaredRoutes(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/metrics"},
		{http.MethodGet, "/api/v1/health"},
		{http.MethodGet, "/api/maps/config"},
		{http.MethodGet, "/api/maps/search"},
		{http.MethodGet, "/api/maps/providers/abc123"},
		{http.MethodGet, "/api/maps/insurance-providers"},
		{http.MethodPost, "/api/maps/routes"},
		{http.MethodGet, "/api/reviews/abc123/google"},
		{http.MethodGet, "/api/reviews/abc123/community"},
		{http.MethodGet, "/api/reviews/reddit/abc123"},
		{http.MethodGet, "/api/reviews/abc123/analysis"},
		{http.MethodPost, "/api/sms/subscribe"},
		{http.MethodPost, "/api/sms/unsubscribe"},
		{http.MethodDelete, "/api/sms/unsubscribe/+15551234567"},
		{http.MethodGet, "/api/sms/subscriptions"},
		{http.MethodPost, "/api/sms/send"},
		{http.MethodPost, "/api/sms/send-bulk"},
		{http.MethodPost, "/api/sms/webhook"},
		{http.MethodPost, "/api/sms/status"},
		{http.MethodGet, "/api/sms/health"},
		{http.MethodGet, "/api/saved-providers"},
		{http.MethodPost, "/api/saved-providers"},
		{http.MethodDelete, "/api/saved-providers/abc123"},
		{http.MethodGet, "/api/history"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			var match mux.RouteMatch
			if !router.Match(req, &match) {
				t.Fatalf("no route matches %s %s (err: %v)", tt.method, tt.path, match.MatchErr)
			}
		})
	}
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/maps/search", nil)
	var match mux.RouteMatch
	if router.Match(req, &match) && match.MatchErr == nil {
		t.Error("expected a method mismatch for DELETE /api/maps/search")
	}
}
