package auth

import "strings"

// TokenSource names one place a bearer credential may come from
type TokenSource string

const (
	SourceCookieToken         TokenSource = "cookie:token"
	SourceCookieAccessToken   TokenSource = "cookie:access_token"
	SourceCookieAuthToken     TokenSource = "cookie:authToken"
	SourceAuthorizationHeader TokenSource = "header:authorization"
)

const (
	CookieToken       = "token"
	CookieAccessToken = "access_token"
	CookieAuthToken   = "authToken"

	bearerPrefix = "Bearer "
)

// cookieName returns the cookie a source reads, or "" for header sources
func (s TokenSource) cookieName() string {
	switch s {
	case SourceCookieToken:
		return CookieToken
	case SourceCookieAccessToken:
		return CookieAccessToken
	case SourceCookieAuthToken:
		return CookieAuthToken
	default:
		return ""
	}
}

// Cookie is one name/value pair from a Cookie header
type Cookie struct {
	Name  string
	Value string
}

// ParseCookieHeader splits a Cookie header into pairs in header order.
// Only the first '=' of a pair separates name from value.
func ParseCookieHeader(header string) []Cookie {
	if header == "" {
		return nil
	}

	parts := strings.Split(header, ";")
	cookies := make([]Cookie, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cookies = append(cookies, Cookie{Name: name, Value: strings.TrimSpace(value)})
	}
	return cookies
}

// lookupCookie returns the first cookie called name
func lookupCookie(cookies []Cookie, name string) (string, bool) {
	for _, c := range cookies {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Resolver extracts a bearer token by trying Sources in order
type Resolver struct {
	Sources []TokenSource
}

// NewResolver creates a resolver over the given sources
func NewResolver(sources ...TokenSource) Resolver {
	return Resolver{Sources: sources}
}

// Resolve returns the first non-empty token found. The second value is
// false when no source yielded one; whether that is an error is up to the route.
func (r Resolver) Resolve(cookieHeader, authorizationHeader string) (string, bool) {
	var cookies []Cookie
	parsed := false

	for _, source := range r.Sources {
		if source == SourceAuthorizationHeader {
			if token, ok := bearerToken(authorizationHeader); ok {
				return token, true
			}
			continue
		}

		if !parsed {
			cookies = ParseCookieHeader(cookieHeader)
			parsed = true
		}
		if value, ok := lookupCookie(cookies, source.cookieName()); ok && value != "" {
			return value, true
		}
	}

	return "", false
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	return token, token != ""
}
