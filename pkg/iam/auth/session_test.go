package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestInspectToken(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("jwt claims", func(t *testing.T) {
		token := signed(t, jwt.MapClaims{
			"id":    "admin-1",
			"email": "ops@example.com",
			"role":  "superadmin",
			"exp":   now.Add(time.Hour).Unix(),
		})

		s := InspectToken(token, now)
		if !s.Authenticated || s.Subject != "admin-1" || s.Email != "ops@example.com" || s.Role != "superadmin" {
			t.Fatalf("unexpected session: %+v", s)
		}
		if s.ExpiresAt == nil || s.Expired {
			t.Fatalf("wanted unexpired session with expiry, got %+v", s)
		}
	})

	t.Run("expired jwt is still decoded", func(t *testing.T) {
		token := signed(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(-time.Minute).Unix()})

		s := InspectToken(token, now)
		if !s.Expired || s.Subject != "u1" {
			t.Fatalf("wanted expired session for u1, got %+v", s)
		}
	})

	t.Run("opaque token", func(t *testing.T) {
		s := InspectToken("not-a-jwt", now)
		if !s.Authenticated || s.Claims != nil {
			t.Fatalf("wanted authenticated session without claims, got %+v", s)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if InspectToken("", now).Authenticated {
			t.Fatalf("wanted unauthenticated session")
		}
	})
}
