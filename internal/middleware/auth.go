package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/futureed/backend/internal/contextkeys"
	"github.com/futureed/backend/internal/domain"
	"github.com/futureed/backend/internal/handler"
)

// TokenVerifier is implemented by *service.AuthService.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.JWTClaims, error)
}

// Auth creates a JWT authentication middleware.
func Auth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handler.JSON(w, http.StatusUnauthorized, map[string]string{"error": "no token provided"})
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handler.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(parts[1]))
			if err != nil {
				handler.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
				return
			}

			// Handlers load the rest of the profile from the store.
			ctx := context.WithValue(r.Context(), contextkeys.UserID, claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
