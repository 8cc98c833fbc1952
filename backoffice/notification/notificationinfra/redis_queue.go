package notificationinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/backoffice/backoffice/notification"
	"github.com/go-redis/redis/v8"
)

// RedisQueue implements notification.Queue on a Redis list plus a sorted
// set for delayed jobs
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisQueue) delayedName() string {
	return q.queueName + ":delayed"
}

// Enqueue adds a job to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, job *notification.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job %s: %w", job.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue email job %s: %w", job.ID, err)
	}
	return nil
}

// Dequeue gets a job from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*notification.Job, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue email job: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var job notification.Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal email job: %w (data: %s)", err, result[1])
	}
	return &job, nil
}

// EnqueueDelayed schedules a job for later processing
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job *notification.Job, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed email job %s: %w", job.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedName(), &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed email job %s: %w", job.ID, err)
	}
	return nil
}

// MoveDelayedToReady moves due delayed jobs to the main queue. A job is
// pushed only by the caller whose ZRem removed it, so concurrent movers
// never duplicate a job.
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	jobs, err := q.client.ZRangeByScore(ctx, q.delayedName(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", time.Now().Unix()),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed email jobs: %w", err)
	}

	moved := 0
	for _, job := range jobs {
		removed, err := q.client.ZRem(ctx, q.delayedName(), job).Result()
		if err != nil {
			return moved, fmt.Errorf("claim delayed email job: %w", err)
		}
		if removed == 0 {
			continue
		}
		if err := q.client.LPush(ctx, q.queueName, job).Err(); err != nil {
			return moved, fmt.Errorf("move delayed email job to ready: %w", err)
		}
		moved++
	}
	return moved, nil
}

// Ping checks if Redis connection is alive
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Stats returns queue sizes
func (q *RedisQueue) Stats(ctx context.Context) (notification.QueueStats, error) {
	pipe := q.client.Pipeline()
	ready := pipe.LLen(ctx, q.queueName)
	delayed := pipe.ZCard(ctx, q.delayedName())
	if _, err := pipe.Exec(ctx); err != nil {
		return notification.QueueStats{}, fmt.Errorf("get email queue stats: %w", err)
	}

	return notification.QueueStats{
		Queue:   q.queueName,
		Ready:   ready.Val(),
		Delayed: delayed.Val(),
	}, nil
}
