package notificationapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/backoffice/backoffice/notification/notificationsrv"
	"github.com/Abraxas-365/backoffice/pkg/mailx"
	"github.com/Abraxas-365/backoffice/pkg/proxy/proxytest"
	"github.com/gofiber/fiber/v2"
)

func newApp(t *testing.T) (*fiber.App, *mailx.NoopSender) {
	t.Helper()
	renderer, err := notificationsrv.NewRenderer(notificationsrv.Brand{CompanyName: "TSP"})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	sender := mailx.NewNoopSender()
	svc := notificationsrv.NewNotificationService(sender, nil, renderer, notificationsrv.Settings{})

	app := proxytest.NewApp()
	RegisterRoutes(app, NewHandlers(svc, nil))
	return app, sender
}

func post(path, body string, token bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token {
		req.Header.Set("Cookie", "token=t")
	}
	return req
}

func TestEmailsRequireToken(t *testing.T) {
	app, sender := newApp(t)

	status, _ := proxytest.Do(t, app, post("/api/emails/contact-reply", `{"to":"a@example.com","name":"Ana","reply":"Hi"}`, false))
	if status != http.StatusUnauthorized {
		t.Fatalf("wanted 401, got %d", status)
	}
	if len(sender.Sent()) != 0 {
		t.Fatalf("wanted nothing sent")
	}
}

func TestContactReplySent(t *testing.T) {
	app, sender := newApp(t)

	status, body := proxytest.Do(t, app, post("/api/emails/contact-reply", `{"to":"a@example.com","name":"Ana","reply":"Thanks!","subject":"Quote"}`, true))
	if status != http.StatusOK {
		t.Fatalf("wanted 200, got %d (%s)", status, body)
	}
	if !strings.Contains(body, `"success":true`) || !strings.Contains(body, `"id":"noop-`) {
		t.Fatalf("wanted success with message id, got %s", body)
	}

	sent := sender.Sent()
	if len(sent) != 1 || sent[0].Subject != "Re: Quote" || sent[0].To[0] != "a@example.com" {
		t.Fatalf("wanted one reply to a@example.com, got %+v", sent)
	}
}

func TestEmailValidation(t *testing.T) {
	app, _ := newApp(t)

	tests := map[string]string{
		"/api/emails/booking-confirmation": `{"to":"sam@example.com","customerName":"Sam","serviceName":"Clean"}`,
		"/api/emails/application-status":   `{"to":"bad","applicantName":"Ana","jobTitle":"Lead","status":"accepted"}`,
		"/api/emails/contact-reply":        `{"to":`,
	}
	for path, body := range tests {
		status, resp := proxytest.Do(t, app, post(path, body, true))
		if status != http.StatusBadRequest {
			t.Fatalf("%s: wanted 400, got %d (%s)", path, status, resp)
		}
	}
}

func TestQueueStatsWithoutQueue(t *testing.T) {
	app, _ := newApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/emails/queue", nil)
	req.Header.Set("Authorization", "Bearer t")
	status, body := proxytest.Do(t, app, req)
	if status != http.StatusOK || !strings.Contains(body, `"queued":false`) {
		t.Fatalf("wanted queued:false, got %d %s", status, body)
	}
}
