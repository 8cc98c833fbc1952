package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/backoffice/backoffice/notification"
	"github.com/Abraxas-365/backoffice/backoffice/notification/notificationsrv"
	"github.com/Abraxas-365/backoffice/pkg/logx"
)

const (
	dequeueTimeout = 5 * time.Second
	moveInterval   = 30 * time.Second
)

// EmailWorker drains the email queue with a fixed pool of goroutines
type EmailWorker struct {
	service *notificationsrv.NotificationService
	queue   notification.Queue
	workers int

	// overridable in tests
	dequeueTimeout time.Duration
	moveInterval   time.Duration

	wg sync.WaitGroup
}

func NewEmailWorker(service *notificationsrv.NotificationService, queue notification.Queue, workers int) *EmailWorker {
	if workers < 1 {
		workers = 1
	}
	return &EmailWorker{
		service:        service,
		queue:          queue,
		workers:        workers,
		dequeueTimeout: dequeueTimeout,
		moveInterval:   moveInterval,
	}
}

// Start launches the pool and the delayed-job mover. They stop when ctx is
// cancelled; Wait blocks until they have.
func (w *EmailWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d email workers", w.workers)

	w.wg.Add(1)
	go w.moveDelayedJobs(ctx)

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *EmailWorker) Wait() {
	w.wg.Wait()
}

func (w *EmailWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logx.Debugf("Email worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Debugf("Email worker %d stopping", workerID)
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx, w.dequeueTimeout)
		if err != nil {
			if ctx.Err() == nil {
				logx.Errorf("Email worker %d dequeue error: %v", workerID, err)
				sleep(ctx, time.Second)
			}
			continue
		}
		if job == nil {
			continue
		}

		logx.Infof("Email worker %d processing job %s (%s, attempt %d)", workerID, job.ID, job.Kind, job.Attempt+1)
		if err := w.service.ProcessJob(ctx, job); err != nil {
			logx.Warnf("Email worker %d: %v", workerID, err)
		}
	}
}

func (w *EmailWorker) moveDelayedJobs(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.moveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed email jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed email jobs to ready queue", count)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
