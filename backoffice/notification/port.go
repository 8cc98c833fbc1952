package notification

import (
	"context"
	"time"
)

// Queue holds jobs waiting for delivery
type Queue interface {
	// Enqueue adds a job to the ready queue
	Enqueue(ctx context.Context, job *Job) error

	// Dequeue blocks up to timeout for the next job. It returns nil, nil
	// when nothing arrived in time.
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)

	// EnqueueDelayed schedules a job for a later attempt
	EnqueueDelayed(ctx context.Context, job *Job, delay time.Duration) error

	// MoveDelayedToReady moves due delayed jobs to the ready queue
	MoveDelayedToReady(ctx context.Context) (int, error)
}

// QueueStats describes the backlog
type QueueStats struct {
	Queue   string `json:"queue"`
	Ready   int64  `json:"ready"`
	Delayed int64  `json:"delayed"`
}

// QueueInspector is implemented by queues that can report their backlog
type QueueInspector interface {
	Stats(ctx context.Context) (QueueStats, error)
}
