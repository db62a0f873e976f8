package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fintrack/fintrack-go/internal/crypto"
	"github.com/fintrack/fintrack-go/internal/model"
)

const testSecret = "test-secret"

func TestResolveBearer(t *testing.T) {
	userID := model.NewID()
	token, err := crypto.GenerateToken(userID, testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	expired, err := crypto.GenerateToken(userID, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"valid", "Bearer " + token, nil},
		{"lowercase scheme", "bearer " + token, nil},
		{"missing", "", ErrMissingCredentials},
		{"no token", "Bearer", ErrMalformedCredentials},
		{"blank token", "Bearer   ", ErrMalformedCredentials},
		{"basic scheme", "Basic dXNlcjpwYXNz", ErrMalformedCredentials},
		{"garbage token", "Bearer not.a.jwt", crypto.ErrInvalidToken},
		{"expired", "Bearer " + expired, crypto.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBearer(tt.header, testSecret)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != userID {
				t.Errorf("expected user %q, got %q", userID, got)
			}
		})
	}
}

func TestJWTAuth(t *testing.T) {
	userID := model.NewID()
	token, err := crypto.GenerateToken(userID, testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	var seen string
	h := JWTAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("rejects missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Errorf("expected WWW-Authenticate Bearer, got %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["error"] != "not authenticated" {
			t.Errorf("unexpected error body %v", body)
		}
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other, _ := crypto.GenerateToken(userID, "other-secret", time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("passes subject through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if seen != userID {
			t.Errorf("expected user %q in context, got %q", userID, seen)
		}
	})
}

func TestUserIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := UserIDFromContext(req.Context()); ok {
		t.Error("expected no user id in a bare context")
	}
}
