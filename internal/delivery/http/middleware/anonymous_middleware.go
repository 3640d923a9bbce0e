package middleware

import (
	"context"
	"net/http"
	"time"
)

type contextKey string

const anonymousIDKey contextKey = "anonymousId"

const cookieName = "anonymousId"

// IdentityResolver maps a cookie value to a stable anonymous id, minting one
// when the value is missing or unknown.
type IdentityResolver interface {
	EnsureUser(ctx context.Context, anonymousID string) string
}

// AnonymousMiddleware assigns every request a durable anonymous identity via
// a cookie. Identity is best-effort: a failing identity store never blocks
// the request.
type AnonymousMiddleware struct {
	resolver IdentityResolver
	secure   bool
}

func NewAnonymousMiddleware(resolver IdentityResolver, secure bool) *AnonymousMiddleware {
	return &AnonymousMiddleware{resolver: resolver, secure: secure}
}

func (m *AnonymousMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var cookieValue string
		if cookie, err := req.Cookie(cookieName); err == nil {
			cookieValue = cookie.Value
		}

		anonymousID := m.resolver.EnsureUser(req.Context(), cookieValue)
		if anonymousID != cookieValue {
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    anonymousID,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(req.Context(), anonymousIDKey, anonymousID)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// GetAnonymousIDFromContext returns the request's anonymous id set by the
// middleware.
func GetAnonymousIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(anonymousIDKey).(string)
	return id, ok && id != ""
}
