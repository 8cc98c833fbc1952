package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/backoffice/backoffice/notification"
	"github.com/Abraxas-365/backoffice/backoffice/notification/notificationsrv"
	"github.com/Abraxas-365/backoffice/pkg/kernel"
	"github.com/Abraxas-365/backoffice/pkg/mailx"
)

type chanQueue struct {
	jobs chan *notification.Job

	mu    sync.Mutex
	moves int
}

func (q *chanQueue) Enqueue(_ context.Context, job *notification.Job) error {
	q.jobs <- job
	return nil
}

func (q *chanQueue) Dequeue(ctx context.Context, timeout time.Duration) (*notification.Job, error) {
	select {
	case job := <-q.jobs:
		return job, nil
	case <-time.After(timeout):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *chanQueue) EnqueueDelayed(ctx context.Context, job *notification.Job, _ time.Duration) error {
	return q.Enqueue(ctx, job)
}

func (q *chanQueue) MoveDelayedToReady(context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.moves++
	return 0, nil
}

func TestWorkerDeliversQueuedJobs(t *testing.T) {
	renderer, err := notificationsrv.NewRenderer(notificationsrv.Brand{CompanyName: "TSP"})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	sender := mailx.NewNoopSender()
	queue := &chanQueue{jobs: make(chan *notification.Job, 8)}
	svc := notificationsrv.NewNotificationService(sender, queue, renderer, notificationsrv.Settings{MaxAttempts: 3})

	w := NewEmailWorker(svc, queue, 2)
	w.dequeueTimeout = 10 * time.Millisecond
	w.moveInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	for _, to := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.SendContactReply(ctx, notification.ContactReplyRequest{To: kernel.NewEmail(to), Name: "Ana", Reply: "Hi"})
		if err != nil {
			t.Fatalf("SendContactReply: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(sender.Sent()) < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	// give the mover a few ticks
	time.Sleep(20 * time.Millisecond)
	cancel()
	w.Wait()

	if got := len(sender.Sent()); got != 3 {
		t.Fatalf("wanted 3 delivered emails, got %d", got)
	}
	queue.mu.Lock()
	defer queue.mu.Unlock()
	if queue.moves == 0 {
		t.Fatalf("wanted the delayed-job mover to run")
	}
}
