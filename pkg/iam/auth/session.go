package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session describes what the dashboard can learn from its own token.
// Signatures are not checked: the upstream API is the only authority.
type Session struct {
	Authenticated bool           `json:"authenticated"`
	Subject       string         `json:"subject,omitempty"`
	Email         string         `json:"email,omitempty"`
	Role          string         `json:"role,omitempty"`
	ExpiresAt     *time.Time     `json:"expiresAt,omitempty"`
	Expired       bool           `json:"expired"`
	Claims        map[string]any `json:"claims,omitempty"`
}

// InspectToken decodes token claims without verifying them.
// Opaque (non-JWT) tokens still count as authenticated.
func InspectToken(token string, now time.Time) Session {
	if token == "" {
		return Session{}
	}

	session := Session{Authenticated: true}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return session
	}

	session.Claims = claims
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		session.Subject = sub
	} else if id, ok := firstString(claims, "id", "_id", "userId"); ok {
		session.Subject = id
	}
	if email, ok := firstString(claims, "email"); ok {
		session.Email = email
	}
	if role, ok := firstString(claims, "role"); ok {
		session.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		session.ExpiresAt = &t
		session.Expired = now.After(t)
	}

	return session
}

func firstString(claims jwt.MapClaims, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
