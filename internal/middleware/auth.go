package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack-go/internal/crypto"
)

type contextKey string

const userIDKey contextKey = "userID"

var (
	ErrMissingCredentials   = errors.New("not authenticated")
	ErrMalformedCredentials = errors.New("invalid authorization format")
)

// ResolveBearer extracts the token from an Authorization header value and
// returns the user ID it was issued for.
func ResolveBearer(header, secret string) (string, error) {
	if header == "" {
		return "", ErrMissingCredentials
	}

	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", ErrMalformedCredentials
	}

	claims, err := crypto.ValidateToken(token, secret)
	if err != nil {
		return "", err
	}
	return claims.UserID(), nil
}

// JWTAuth returns middleware that validates a Bearer token from the Authorization header.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := ResolveBearer(r.Header.Get("Authorization"), secret)
			if err != nil {
				msg := err.Error()
				if errors.Is(err, crypto.ErrInvalidToken) {
					msg = "invalid or expired token"
				}
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeJSONError(w, http.StatusUnauthorized, msg)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
