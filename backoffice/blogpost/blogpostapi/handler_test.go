package blogpostapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/proxy/proxytest"
)

func TestPublicListAndGatedDelete(t *testing.T) {
	u := proxytest.NewUpstream(t, proxytest.JSON(http.StatusOK, `[{"id":"p1"}]`))
	app := proxytest.NewApp()
	RegisterRoutes(app, NewHandlers(proxy.NewGateway(u.Client())))

	status, body := proxytest.Do(t, app, httptest.NewRequest(http.MethodGet, "/api/blog-posts", nil))
	if status != http.StatusOK || body != `[{"id":"p1"}]` {
		t.Fatalf("wanted public list, got %d %s", status, body)
	}
	if got := u.Calls()[0].Path; got != "/alt/blog-posts" {
		t.Fatalf("wanted alternate base, got %s", got)
	}

	status, _ = proxytest.Do(t, app, httptest.NewRequest(http.MethodDelete, "/api/blog-posts/p1", nil))
	if status != http.StatusUnauthorized {
		t.Fatalf("wanted 401 for anonymous delete, got %d", status)
	}
	if len(u.Calls()) != 1 {
		t.Fatalf("wanted a single upstream call, got %d", len(u.Calls()))
	}
}
