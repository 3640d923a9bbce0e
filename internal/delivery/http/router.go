package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healthspot/internal/delivery/http/handler"
	"healthspot/internal/delivery/http/middleware"
	"healthspot/pkg/response"
)

type Router struct {
	router               *mux.Router
	mapHandler           *handler.MapHandler
	routeHandler         *handler.RouteHandler
	reviewHandler        *handler.ReviewHandler
	smsHandler           *handler.SmsHandler
	savedProviderHandler *handler.SavedProviderHandler
	historyHandler       *handler.HistoryHandler
	corsMiddleware       *middleware.CORSMiddleware
	anonymousMiddleware  *middleware.AnonymousMiddleware
	rateLimitMiddleware  *middleware.RateLimitMiddleware
	metricsMiddleware    *middleware.MetricsMiddleware
}

func NewRouter(
	mapHandler *handler.MapHandler,
	routeHandler *handler.RouteHandler,
	reviewHandler *handler.ReviewHandler,
	smsHandler *handler.SmsHandler,
	savedProviderHandler *handler.SavedProviderHandler,
	historyHandler *handler.HistoryHandler,
	corsMiddleware *middleware.CORSMiddleware,
	anonymousMiddleware *middleware.AnonymousMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		mapHandler:           mapHandler,
		routeHandler:         routeHandler,
		reviewHandler:        reviewHandler,
		smsHandler:           smsHandler,
		savedProviderHandler: savedProviderHandler,
		historyHandler:       historyHandler,
		corsMiddleware:       corsMiddleware,
		anonymousMiddleware:  anonymousMiddleware,
		rateLimitMiddleware:  rateLimitMiddleware,
		metricsMiddleware:    metricsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Operational endpoints stay outside the rate limit and identity
	// middleware.
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.router.HandleFunc("/api/v1/health", r.healthCheck).Methods(http.MethodGet)

	// The Twilio webhook authenticates by origin, not cookie, and must not
	// be rate limited against the shared Twilio IPs.
	r.router.HandleFunc("/api/sms/webhook", r.smsHandler.IncomingWebhook).Methods(http.MethodPost)
	r.router.HandleFunc("/api/sms/status", r.smsHandler.StatusCallback).Methods(http.MethodPost)

	api := r.router.PathPrefix("/api").Subrouter()
	api.Use(r.metricsMiddleware.Handle)
	api.Use(r.rateLimitMiddleware.Handle)
	api.Use(r.anonymousMiddleware.Handle)

	// Maps
	maps := api.PathPrefix("/maps").Subrouter()
	maps.HandleFunc("/config", r.mapHandler.GetConfig).Methods(http.MethodGet)
	maps.HandleFunc("/search", r.mapHandler.SearchProviders).Methods(http.MethodGet)
	maps.HandleFunc("/providers/{id}", r.mapHandler.GetProvider).Methods(http.MethodGet)
	maps.HandleFunc("/insurance-providers", r.mapHandler.GetInsuranceProviders).Methods(http.MethodGet)
	maps.HandleFunc("/routes", r.routeHandler.ComputeRoute).Methods(http.MethodPost)

	// Reviews
	reviews := api.PathPrefix("/reviews").Subrouter()
	reviews.HandleFunc("/{id}/google", r.reviewHandler.GetGoogleReviews).Methods(http.MethodGet)
	reviews.HandleFunc("/{id}/community", r.reviewHandler.GetCommunityReviews).Methods(http.MethodGet)
	// Alias kept for clients built against the reddit-flavored path.
	reviews.HandleFunc("/reddit/{id}", r.reviewHandler.GetCommunityReviews).Methods(http.MethodGet)
	reviews.HandleFunc("/{id}/analysis", r.reviewHandler.AnalyzeReviews).Methods(http.MethodGet)

	// SMS
	sms := api.PathPrefix("/sms").Subrouter()
	sms.HandleFunc("/subscribe", r.smsHandler.Subscribe).Methods(http.MethodPost)
	sms.HandleFunc("/unsubscribe", r.smsHandler.Unsubscribe).Methods(http.MethodPost)
	sms.HandleFunc("/unsubscribe/{phoneNumber}", r.smsHandler.UnsubscribeByPhone).Methods(http.MethodDelete)
	sms.HandleFunc("/subscriptions", r.smsHandler.ListSubscriptions).Methods(http.MethodGet)
	sms.HandleFunc("/send", r.smsHandler.SendProviderInfo).Methods(http.MethodPost)
	sms.HandleFunc("/send-bulk", r.smsHandler.SendBulk).Methods(http.MethodPost)
	sms.HandleFunc("/health", r.smsHandler.Health).Methods(http.MethodGet)

	// Saved providers
	saved := api.PathPrefix("/saved-providers").Subrouter()
	saved.HandleFunc("", r.savedProviderHandler.List).Methods(http.MethodGet)
	saved.HandleFunc("", r.savedProviderHandler.Save).Methods(http.MethodPost)
	saved.HandleFunc("/{id}", r.savedProviderHandler.Remove).Methods(http.MethodDelete)

	// Search history
	api.HandleFunc("/history", r.historyHandler.List).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "Service is healthy", map[string]string{
		"status": "ok",
	})
}
