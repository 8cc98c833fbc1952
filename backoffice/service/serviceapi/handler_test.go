package serviceapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/proxy/proxytest"
	"github.com/gofiber/fiber/v2"
)

func newApp(u *proxytest.Upstream) *fiber.App {
	app := proxytest.NewApp()
	RegisterRoutes(app, NewHandlers(proxy.NewGateway(u.Client())))
	return app
}

func TestSubServiceReadsArePublic(t *testing.T) {
	u := proxytest.NewUpstream(t, proxytest.JSON(http.StatusOK, `{"success":true,"data":[{"slug":"deep-clean"}]}`))
	app := newApp(u)

	status, body := proxytest.Do(t, app, httptest.NewRequest(http.MethodGet, "/api/services/cleaning/sub-services?active=true", nil))
	if status != http.StatusOK {
		t.Fatalf("wanted 200, got %d (%s)", status, body)
	}
	if body != `{"success":true,"data":[{"slug":"deep-clean"}]}` {
		t.Fatalf("wanted passthrough body, got %s", body)
	}

	call := u.Calls()[0]
	if call.Path != "/alt/services/cleaning/sub-services" || call.Query != "active=true" {
		t.Fatalf("wanted alternate sub-service path with query, got %s?%s", call.Path, call.Query)
	}
}

func TestGetSubService(t *testing.T) {
	u := proxytest.NewUpstream(t, proxytest.JSON(http.StatusOK, `{"slug":"deep-clean"}`))
	app := newApp(u)

	status, _ := proxytest.Do(t, app, httptest.NewRequest(http.MethodGet, "/api/services/cleaning/sub-services/deep-clean", nil))
	if status != http.StatusOK {
		t.Fatalf("wanted 200, got %d", status)
	}
	if got := u.Calls()[0].Path; got != "/alt/services/cleaning/sub-services/deep-clean" {
		t.Fatalf("wanted sub-service item path, got %s", got)
	}
}

func TestSubServiceWritesNeedToken(t *testing.T) {
	u := proxytest.NewUpstream(t, proxytest.JSON(http.StatusCreated, `{}`))
	app := newApp(u)

	req := httptest.NewRequest(http.MethodPost, "/api/services/cleaning/sub-services", strings.NewReader(`{"name":"Windows"}`))
	status, _ := proxytest.Do(t, app, req)
	if status != http.StatusUnauthorized {
		t.Fatalf("wanted 401 without a token, got %d", status)
	}
	if len(u.Calls()) != 0 {
		t.Fatalf("wanted no upstream call")
	}
}

func TestCreateSubService(t *testing.T) {
	u := proxytest.NewUpstream(t, proxytest.JSON(http.StatusCreated, `{"success":true,"data":{"slug":"windows"}}`))
	app := newApp(u)

	req := httptest.NewRequest(http.MethodPost, "/api/services/cleaning/sub-services", strings.NewReader(`{"name":"Windows"}`))
	req.Header.Set("Authorization", "Bearer admin")
	status, body := proxytest.Do(t, app, req)
	if status != http.StatusCreated {
		t.Fatalf("wanted 201, got %d (%s)", status, body)
	}

	call := u.Calls()[0]
	if call.Method != http.MethodPost || call.Body != `{"name":"Windows"}` || call.Auth != "Bearer admin" {
		t.Fatalf("wanted authorized POST with body, got %+v", call)
	}
}

func TestDeleteSubServiceEchoesSubSlug(t *testing.T) {
	u := proxytest.NewUpstream(t, proxytest.Reply{Status: http.StatusNoContent})
	app := newApp(u)

	req := httptest.NewRequest(http.MethodDelete, "/api/services/cleaning/sub-services/windows", nil)
	req.Header.Set("Cookie", "authToken=legacy")
	status, body := proxytest.Do(t, app, req)

	if status != http.StatusOK {
		t.Fatalf("wanted 200, got %d", status)
	}
	if body != `{"success":true,"data":{"id":"windows"}}` {
		t.Fatalf("wanted sub-slug echoed, got %s", body)
	}
}

func TestServiceCRUDStillRegistered(t *testing.T) {
	u := proxytest.NewUpstream(t, proxytest.JSON(http.StatusOK, `[{"slug":"cleaning"}]`))
	app := newApp(u)

	status, body := proxytest.Do(t, app, httptest.NewRequest(http.MethodGet, "/api/services", nil))
	if status != http.StatusOK || body != `[{"slug":"cleaning"}]` {
		t.Fatalf("wanted public service list, got %d %s", status, body)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/services/cleaning", strings.NewReader(`{"name":"Cleaning"}`))
	req.Header.Set("Cookie", "token=t")
	if status, _ := proxytest.Do(t, app, req); status != http.StatusOK {
		t.Fatalf("wanted 200 for authorized update, got %d", status)
	}
	if got := u.Calls()[1]; got.Method != http.MethodPut || got.Path != "/alt/services/cleaning" {
		t.Fatalf("wanted PUT /alt/services/cleaning, got %s %s", got.Method, got.Path)
	}
}

func TestDotSlugsRejected(t *testing.T) {
	u := proxytest.NewUpstream(t, proxytest.Reply{Status: http.StatusNoContent})
	app := newApp(u)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"parent sub-slug", http.MethodDelete, "/api/services/cleaning/sub-services/.."},
		{"current sub-slug", http.MethodDelete, "/api/services/cleaning/sub-services/."},
		{"encoded sub-slug", http.MethodDelete, "/api/services/cleaning/sub-services/%2e%2e"},
		{"parent slug", http.MethodDelete, "/api/services/../sub-services/windows"},
		{"parent slug on read", http.MethodGet, "/api/services/../sub-services"},
		{"encoded slash", http.MethodGet, "/api/services/cleaning/sub-services/a%2Fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Cookie", "token=t")
			status, body := proxytest.Do(t, app, req)
			if status != http.StatusBadRequest {
				t.Fatalf("wanted 400, got %d (%s)", status, body)
			}
		})
	}

	if calls := u.Calls(); len(calls) != 0 {
		t.Fatalf("wanted no upstream call, got %+v", calls)
	}
}
