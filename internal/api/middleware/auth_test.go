package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apiContext "hookdash/internal/api/context"
	"hookdash/internal/platform/auth"
	"hookdash/internal/platform/config"
)

func TestAuthMiddleware(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, Secret: "test-secret", TokenTTL: time.Hour}
	tokenSvc := auth.NewTokenService(cfg)
	mw := NewAuthMiddleware(tokenSvc)

	token, err := tokenSvc.Generate("ops", "viewer")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	t.Run("Valid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/events", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rr := httptest.NewRecorder()
		handler := mw.Handle(func(w http.ResponseWriter, r *http.Request) {
			claims := r.Context().Value(apiContext.Claims).(*auth.Claims)
			if claims.Name != "ops" {
				t.Errorf("Expected subject ops, got %s", claims.Name)
			}
			w.WriteHeader(http.StatusOK)
		})
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rr.Code)
		}
	})

	t.Run("Missing Header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/events", nil)

		rr := httptest.NewRecorder()
		handler := mw.Handle(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Handler should not be called")
		})
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rr.Code)
		}
	})

	t.Run("Garbage Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/events", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		rr := httptest.NewRecorder()
		handler := mw.Handle(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Handler should not be called")
		})
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rr.Code)
		}
	})
}
