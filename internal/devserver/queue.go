package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/redis/go-redis/v9"
)

// AnalysisJob asks the workers to analyze an uploaded resume
type AnalysisJob struct {
	ID           string         `json:"id"`
	Owner        kernel.UserID  `json:"owner"`
	ResumeURL    kernel.FileURL `json:"resume_url"`
	AttemptCount int            `json:"attempt_count"`
	MaxAttempts  int            `json:"max_attempts"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Queue carries analysis jobs to the workers
type Queue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, job AnalysisJob) error

	// Dequeue waits up to timeout for a job; nil when none arrived
	Dequeue(ctx context.Context, timeout time.Duration) (*AnalysisJob, error)

	// EnqueueDelayed schedules a retry
	EnqueueDelayed(ctx context.Context, job AnalysisJob, delay time.Duration) error

	// MoveDelayedToReady moves due retries to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)
}

// ============================================================================
// Memory
// ============================================================================

type delayedJob struct {
	job AnalysisJob
	due time.Time
}

// MemoryQueue is a process local Queue
type MemoryQueue struct {
	ready chan AnalysisJob

	mu      sync.Mutex
	delayed []delayedJob
	now     func() time.Time
}

// NewMemoryQueue creates a queue holding up to size ready jobs
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 64
	}
	return &MemoryQueue{ready: make(chan AnalysisJob, size), now: time.Now}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job AnalysisJob) error {
	select {
	case q.ready <- job:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue analysis %s: %w", job.ID, ctx.Err())
	default:
		return fmt.Errorf("enqueue analysis %s: queue full", job.ID)
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*AnalysisJob, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case job := <-q.ready:
		return &job, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *MemoryQueue) EnqueueDelayed(_ context.Context, job AnalysisJob, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed = append(q.delayed, delayedJob{job: job, due: q.now().Add(delay)})
	return nil
}

func (q *MemoryQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	now := q.now()
	var due []AnalysisJob
	kept := q.delayed[:0]
	for _, d := range q.delayed {
		if d.due.After(now) {
			kept = append(kept, d)
		} else {
			due = append(due, d.job)
		}
	}
	q.delayed = kept
	q.mu.Unlock()

	for i, job := range due {
		if err := q.Enqueue(ctx, job); err != nil {
			return i, err
		}
	}
	return len(due), nil
}

// Len returns the number of ready jobs
func (q *MemoryQueue) Len() int {
	return len(q.ready)
}

// ============================================================================
// Redis
// ============================================================================

// RedisQueue keeps jobs in a Redis list, and retries in a sorted set
// scored by due time
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a Redis backed queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{client: client, queueName: queueName}
}

func (q *RedisQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

func (q *RedisQueue) Enqueue(ctx context.Context, job AnalysisJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal analysis %s: %w", job.ID, err)
	}
	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue analysis %s: %w", job.ID, err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*AnalysisJob, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue analysis: %w", err)
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var job AnalysisJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("decode analysis job: %w", err)
	}
	return &job, nil
}

func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job AnalysisJob, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed analysis %s: %w", job.ID, err)
	}
	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedKey(), redis.Z{Score: score, Member: data}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed analysis %s: %w", job.ID, err)
	}
	return nil
}

func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	jobs, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", time.Now().Unix()),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed analyses: %w", err)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	pipe := q.client.TxPipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, q.delayedKey(), job)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed analyses to ready: %w", err)
	}
	return len(jobs), nil
}

// Ping checks the Redis connection
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
