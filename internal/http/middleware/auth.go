// Package middleware carries the HTTP middleware chain: bearer-token auth
// and request tracing.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/promoforge/promoforge/pkg/crypto"
)

// Key for storing operator identity in context
type contextKey string

const OperatorKey contextKey = "operator"

// AuthConfig holds the configuration for the auth middleware. Requests
// authenticate either with a signed JWT (interactive operators) or with the
// static API token whose bcrypt hash is configured at deploy time
// (automation).
type AuthConfig struct {
	JWTSecret    []byte
	APITokenHash string
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtSecret string, apiTokenHash string) *AuthConfig {
	return &AuthConfig{
		JWTSecret:    []byte(jwtSecret),
		APITokenHash: apiTokenHash,
	}
}

// RequireAuth creates a middleware that verifies the bearer credential
func (ac *AuthConfig) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			token := parts[1]

			operator, err := ac.authenticate(token)
			if err != nil {
				http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), OperatorKey, operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (ac *AuthConfig) authenticate(token string) (string, error) {
	// The static API token is opaque, never a JWT
	if ac.APITokenHash != "" && !strings.Contains(token, ".") {
		if !crypto.CheckAPIToken(token, ac.APITokenHash) {
			return "", fmt.Errorf("unknown API token")
		}
		return "api", nil
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ac.JWTSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	operator, _ := claims["sub"].(string)
	if operator == "" {
		return "", fmt.Errorf("subject not found in token")
	}
	return operator, nil
}

// OperatorFromContext returns the authenticated operator identity, if any.
func OperatorFromContext(ctx context.Context) string {
	operator, _ := ctx.Value(OperatorKey).(string)
	return operator
}
