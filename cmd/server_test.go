package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/backoffice/pkg/config"
	"github.com/Abraxas-365/backoffice/pkg/proxy/proxytest"
	"github.com/gofiber/fiber/v2"
)

func newTestServer(t *testing.T) (*fiber.App, *proxytest.Upstream) {
	t.Helper()
	up := proxytest.NewUpstream(t, proxytest.JSON(http.StatusOK, `{"success":true,"data":[]}`))
	cfg := &config.Config{
		Env:    "development",
		Server: config.ServerConfig{Port: "0", AllowOrigins: "*"},
		Upstream: config.UpstreamConfig{
			BaseURL:          up.URL + "/api",
			AlternateBaseURL: up.URL + "/alt",
		},
		Mail:         config.MailConfig{From: "noreply@example.com", CompanyName: "TSP"},
		Notification: config.NotificationConfig{Workers: 1, MaxAttempts: 3},
	}
	container := NewContainer(cfg)
	t.Cleanup(container.Close)
	return newApp(container), up
}

func TestHealth(t *testing.T) {
	app, _ := newTestServer(t)

	status, body := proxytest.Do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	if status != http.StatusOK {
		t.Fatalf("wanted 200, got %d", status)
	}
	if !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("wanted ok status, got %s", body)
	}
}

func TestRoutesAreMounted(t *testing.T) {
	app, up := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		cookie     string
		bearer     string
		wantStatus int
	}{
		{"bookings need a token", http.MethodGet, "/api/bookings", "", "", http.StatusUnauthorized},
		{"bookings with token", http.MethodGet, "/api/bookings", "token=abc", "", http.StatusOK},
		{"blog posts are public", http.MethodGet, "/api/blog-posts", "", "", http.StatusOK},
		{"sub-services are public", http.MethodGet, "/api/services/web/sub-services", "", "", http.StatusOK},
		{"contacts ignore the bearer header", http.MethodGet, "/api/contacts", "", "abc", http.StatusUnauthorized},
		{"dashboard needs a token", http.MethodGet, "/api/dashboard/stats", "", "", http.StatusUnauthorized},
		{"email queue needs a token", http.MethodGet, "/api/emails/queue", "", "", http.StatusUnauthorized},
		{"logout is open", http.MethodPost, "/api/logout", "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", tt.cookie)
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			status, body := proxytest.Do(t, app, req)
			if status != tt.wantStatus {
				t.Fatalf("wanted %d, got %d (%s)", tt.wantStatus, status, body)
			}
		})
	}

	var sawAlternate bool
	for _, call := range up.Calls() {
		if call.Path == "/alt/blog-posts" {
			sawAlternate = true
			if call.Header.Get("X-Request-ID") == "" {
				t.Fatalf("wanted the request id to be forwarded upstream")
			}
		}
	}
	if !sawAlternate {
		t.Fatalf("wanted blog posts to be read from the alternate base, got %+v", up.Calls())
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: globalErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("kaboom") })

	status, body := proxytest.Do(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if status != http.StatusInternalServerError {
		t.Fatalf("wanted 500, got %d", status)
	}
	if !strings.Contains(body, `"error":"Internal Server Error"`) || !strings.Contains(body, `"details":"kaboom"`) {
		t.Fatalf("wanted generic error with details, got %s", body)
	}

	status, _ = proxytest.Do(t, app, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if status != http.StatusNotFound {
		t.Fatalf("wanted 404 for unknown route, got %d", status)
	}
}
