package notificationsrv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/backoffice/backoffice/application"
	"github.com/Abraxas-365/backoffice/backoffice/notification"
	"github.com/Abraxas-365/backoffice/pkg/mailx"
)

// flakySender fails its first `failures` sends, and the call numbered
// failCall when set
type flakySender struct {
	mu       sync.Mutex
	failures int
	failCall int
	calls    int
	sent     []mailx.SendRequest
}

func (s *flakySender) Send(_ context.Context, req mailx.SendRequest) (mailx.SendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls == s.failCall {
		return mailx.SendResult{}, errors.New("provider unavailable")
	}
	if s.failures > 0 {
		s.failures--
		return mailx.SendResult{}, errors.New("provider unavailable")
	}
	s.sent = append(s.sent, req)
	return mailx.SendResult{MessageID: "msg-" + req.To[0], SentAt: time.Now()}, nil
}

type memoryQueue struct {
	mu      sync.Mutex
	ready   []*notification.Job
	delayed []*notification.Job
	delays  []time.Duration
}

func (q *memoryQueue) Enqueue(_ context.Context, job *notification.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ready = append(q.ready, job)
	return nil
}

func (q *memoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*notification.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ready) == 0 {
		return nil, nil
	}
	job := q.ready[0]
	q.ready = q.ready[1:]
	return job, nil
}

func (q *memoryQueue) EnqueueDelayed(_ context.Context, job *notification.Job, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed = append(q.delayed, job)
	q.delays = append(q.delays, delay)
	return nil
}

func (q *memoryQueue) MoveDelayedToReady(context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.delayed)
	q.ready = append(q.ready, q.delayed...)
	q.delayed = nil
	return n, nil
}

var booking = notification.BookingConfirmationRequest{
	To:           "sam@example.com",
	CustomerName: "Sam",
	ServiceName:  "Deep clean",
	Date:         "2026-11-02",
}

func TestSendBookingConfirmationInline(t *testing.T) {
	sender := &flakySender{}
	svc := NewNotificationService(sender, nil, newRenderer(t), Settings{
		From:       "TSP <noreply@example.com>",
		AdminEmail: "ops@example.com",
	})

	receipt, err := svc.SendBookingConfirmation(context.Background(), booking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Queued || receipt.ID != "msg-sam@example.com" {
		t.Fatalf("wanted inline receipt with customer message id, got %+v", receipt)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("wanted customer and admin emails, got %d", len(sender.sent))
	}
	admin := sender.sent[1]
	if admin.To[0] != "ops@example.com" || admin.ReplyTo != "sam@example.com" {
		t.Fatalf("wanted admin copy replying to the customer, got %+v", admin)
	}
}

func TestSendValidation(t *testing.T) {
	svc := NewNotificationService(&flakySender{}, nil, newRenderer(t), Settings{})

	bad := booking
	bad.To = "nope"
	if _, err := svc.SendBookingConfirmation(context.Background(), bad); !errors.Is(err, notification.ErrInvalidRecipient()) {
		t.Fatalf("wanted invalid recipient, got %v", err)
	}

	_, err := svc.SendApplicationStatus(context.Background(), notification.ApplicationStatusRequest{
		To: "a@example.com", ApplicantName: "Ana", JobTitle: "Lead", Status: "hired?",
	})
	if !errors.Is(err, notification.ErrInvalidStatus()) {
		t.Fatalf("wanted invalid status, got %v", err)
	}

	_, err = svc.SendContactReply(context.Background(), notification.ContactReplyRequest{To: "a@example.com", Name: "Ana"})
	if !errors.Is(err, notification.ErrMissingField()) {
		t.Fatalf("wanted missing field, got %v", err)
	}
}

func TestInlineSendFailure(t *testing.T) {
	svc := NewNotificationService(&flakySender{failures: 1}, nil, newRenderer(t), Settings{})

	_, err := svc.SendApplicationStatus(context.Background(), notification.ApplicationStatusRequest{
		To: "a@example.com", ApplicantName: "Ana", JobTitle: "Lead", Status: application.StatusAccepted,
	})
	if !errors.Is(err, notification.ErrSendFailed()) {
		t.Fatalf("wanted send failure, got %v", err)
	}
}

func TestInlineAdminCopyFailureKeepsCustomerResult(t *testing.T) {
	sender := &flakySender{failCall: 2}
	svc := NewNotificationService(sender, nil, newRenderer(t), Settings{AdminEmail: "ops@example.com"})

	receipt, err := svc.SendBookingConfirmation(context.Background(), booking)
	if err != nil {
		t.Fatalf("wanted success once the customer email is out, got %v", err)
	}
	if receipt.ID != "msg-sam@example.com" || receipt.Undelivered != 1 {
		t.Fatalf("wanted customer receipt with one undelivered copy, got %+v", receipt)
	}
	if len(sender.sent) != 1 || sender.sent[0].To[0] != "sam@example.com" {
		t.Fatalf("wanted only the customer email delivered, got %+v", sender.sent)
	}
}

func TestQueuedDeliveryRetries(t *testing.T) {
	sender := &flakySender{failures: 2}
	queue := &memoryQueue{}
	svc := NewNotificationService(sender, queue, newRenderer(t), Settings{
		AdminEmail:  "ops@example.com",
		MaxAttempts: 3,
		RetryDelay:  time.Minute,
	})

	receipt, err := svc.SendBookingConfirmation(context.Background(), booking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !receipt.Queued || receipt.ID == "" {
		t.Fatalf("wanted queued receipt, got %+v", receipt)
	}

	for attempt := 1; attempt <= 3; attempt++ {
		job, _ := queue.Dequeue(context.Background(), 0)
		if job == nil {
			queue.MoveDelayedToReady(context.Background())
			job, _ = queue.Dequeue(context.Background(), 0)
		}
		if job == nil {
			t.Fatalf("attempt %d: wanted a job", attempt)
		}
		err := svc.ProcessJob(context.Background(), job)
		if attempt < 3 && err == nil {
			t.Fatalf("attempt %d: wanted failure", attempt)
		}
		if attempt == 3 && err != nil {
			t.Fatalf("attempt 3: wanted success, got %v", err)
		}
	}

	if len(queue.delays) != 2 || queue.delays[0] != time.Minute || queue.delays[1] != 2*time.Minute {
		t.Fatalf("wanted linear backoff of 1m then 2m, got %v", queue.delays)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("wanted both emails sent exactly once, got %d", len(sender.sent))
	}
}

func TestQueuedDeliveryGivesUp(t *testing.T) {
	queue := &memoryQueue{}
	svc := NewNotificationService(&flakySender{failures: 10}, queue, newRenderer(t), Settings{MaxAttempts: 2})

	job := &notification.Job{ID: "j1", Kind: notification.KindContactReply, MaxAttempts: 2,
		Messages: []mailx.SendRequest{{To: []string{"a@example.com"}, Subject: "Hi"}}}

	svc.ProcessJob(context.Background(), job)
	if len(queue.delayed) != 1 {
		t.Fatalf("wanted a retry after the first failure")
	}
	svc.ProcessJob(context.Background(), job)
	if len(queue.delayed) != 1 {
		t.Fatalf("wanted no retry after the last attempt, got %d delayed", len(queue.delayed))
	}
	if job.LastError != "provider unavailable" {
		t.Fatalf("wanted last error recorded, got %q", job.LastError)
	}
}
