package middleware

import (
	"context"
	"net/http"
	"strings"

	"personalportal/pkg/logger"
)

type contextKey string

const UsernameKey contextKey = "username"

// TokenParser verifies a bearer token and returns the username it was issued to.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// Auth rejects requests without a valid bearer token and stores the
// token's username in the request context.
func Auth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Browsers cannot set headers on websocket upgrades, so a query
			// parameter is accepted too.
			tokenString := r.URL.Query().Get("token")
			if tokenString == "" {
				tokenString = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}
			if tokenString == "" {
				http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
				return
			}

			username, err := tokens.ParseToken(tokenString)
			if err != nil {
				logger.Sugar.Infof("Rejected token on %s: %v", r.URL.Path, err)
				http.Error(w, "Unauthorized: Invalid or expired token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Username returns the name stored by Auth, or "" when the route is not protected.
func Username(ctx context.Context) string {
	name, _ := ctx.Value(UsernameKey).(string)
	return name
}
