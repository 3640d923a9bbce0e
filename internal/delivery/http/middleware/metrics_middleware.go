package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"healthspot/internal/metrics"
)

type MetricsMiddleware struct {
}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (m *MetricsMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, req)

		// The route template keeps label cardinality bounded; raw paths
		// with ids would blow up the series count.
		endpoint := req.URL.Path
		if route := mux.CurrentRoute(req); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				endpoint = template
			}
		}

		status := strconv.Itoa(recorder.status)
		metrics.HTTPRequestsTotal.WithLabelValues(req.Method, endpoint, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(req.Method, endpoint, status).Observe(time.Since(start).Seconds())
	})
}
