package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"healthspot/internal/metrics"
	"healthspot/pkg/response"
)

// RateLimiter is a fixed-window per-client limiter. Windows are tracked in
// memory per IP; a full sweep evicts expired windows whenever the map is
// touched past the eviction interval, so an idle server does not accumulate
// stale entries.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	windowSize  time.Duration
	maxRequests int
	lastSweep   time.Time

	// now is replaceable for tests.
	now func() time.Time
}

type window struct {
	start time.Time
	count int
}

func NewRateLimiter(windowSize time.Duration, maxRequests int) *RateLimiter {
	return &RateLimiter{
		windows:     make(map[string]*window),
		windowSize:  windowSize,
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

// Allow reports whether the client identified by key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.windowSize {
		l.windows[key] = &window{start: now, count: 1}
		return true
	}
	if w.count >= l.maxRequests {
		return false
	}
	w.count++
	return true
}

func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.windowSize {
		return
	}
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.windowSize {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}

type RateLimitMiddleware struct {
	limiter *RateLimiter
}

func NewRateLimitMiddleware(limiter *RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !m.limiter.Allow(clientIP(req)) {
			metrics.RateLimitedTotal.Inc()
			response.TooManyRequests(w, "Too many requests, please slow down")
			return
		}
		next.ServeHTTP(w, req)
	})
}

// clientIP prefers the leftmost X-Forwarded-For entry so limits apply to the
// end client behind a proxy, falling back to the connection address.
func clientIP(req *http.Request) string {
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx != -1 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}
