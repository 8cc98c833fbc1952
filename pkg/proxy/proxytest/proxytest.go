// Package proxytest provides a recording fake upstream and Fiber helpers
// for route tests.
package proxytest

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Abraxas-365/backoffice/pkg/errx"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
	"github.com/gofiber/fiber/v2"
)

// Call is one request seen by the fake upstream
type Call struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Header http.Header
	Body   string
}

// Reply is what the fake upstream answers
type Reply struct {
	Status      int
	ContentType string
	Body        string
}

// JSON is a Reply with an application/json body
func JSON(status int, body string) Reply {
	return Reply{Status: status, ContentType: "application/json", Body: body}
}

// Upstream records calls and answers from a route table keyed by path,
// falling back to Default
type Upstream struct {
	*httptest.Server

	mu      sync.Mutex
	calls   []Call
	routes  map[string]Reply
	Default Reply
}

// NewUpstream starts a fake upstream that answers every path with reply
func NewUpstream(t *testing.T, reply Reply) *Upstream {
	t.Helper()
	u := &Upstream{Default: reply, routes: map[string]Reply{}}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

// On sets the reply for one exact path, e.g. "/api/bookings"
func (u *Upstream) On(path string, reply Reply) *Upstream {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes[path] = reply
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	u.mu.Lock()
	u.calls = append(u.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	reply, ok := u.routes[r.URL.Path]
	if !ok {
		reply = u.Default
	}
	u.mu.Unlock()

	if reply.ContentType != "" {
		w.Header().Set("Content-Type", reply.ContentType)
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	io.WriteString(w, reply.Body)
}

// Calls returns a copy of the recorded calls
func (u *Upstream) Calls() []Call {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]Call(nil), u.calls...)
}

// Client returns an upstream client whose primary base is <url>/api and
// alternate base is <url>/alt
func (u *Upstream) Client() *upstream.Client {
	return upstream.NewClient(upstream.Config{
		BaseURL:          u.URL + "/api",
		AlternateBaseURL: u.URL + "/alt",
	}, nil)
}

// NewApp returns a Fiber app using ErrorHandler
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
}

// ErrorHandler renders errors the same way the server does
func ErrorHandler(c *fiber.Ctx, err error) error {
	var e *errx.Error
	if errors.As(err, &e) {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"details": err.Error(),
	})
}

// Do runs req against app and returns the status and body
func Do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response: %v", err)
	}
	return resp.StatusCode, string(b)
}
