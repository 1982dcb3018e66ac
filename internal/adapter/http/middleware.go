package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

// AuthCookieName is the session cookie carrying the signed token.
const AuthCookieName = "auth_token"

type contextKey string

const claimsContextKey contextKey = "auth_claims"

func LoggingMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := fmt.Sprintf("req-%d", time.Now().UnixNano())

			lgr.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), requestID, map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			next.ServeHTTP(w, r)

			lgr.Debug("http_response", "Request completed", requestID, map[string]interface{}{
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

func RecoveryMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := fmt.Sprintf("req-%d", time.Now().UnixNano())
					lgr.Error("panic_recovered", "Panic recovered", requestID, nil, fmt.Errorf("%v", err))
					respondJSON(w, http.StatusInternalServerError, Response{Success: false, Message: "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a valid session token. The same
// "unauthorized" body is sent whether the token is missing, invalid or
// expired.
func RequireAuth(auth interfaces.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.Verify(extractToken(r))
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches claims when a valid token is present but lets the
// request through either way. Handlers that widen behavior for admins (e.g.
// listing inactive bouquets) check the context themselves.
func OptionalAuth(auth interfaces.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, err := auth.Verify(extractToken(r)); err == nil {
				r = r.WithContext(withClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func withClaims(ctx context.Context, claims *interfaces.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(ctx context.Context) (*interfaces.AuthClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*interfaces.AuthClaims)
	return claims, ok
}
