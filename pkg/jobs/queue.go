package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job represents a queued background task.
type Job struct {
	Type     string
	Payload  interface{}
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	Logger     *zap.Logger
}

// Queue is a lightweight in-memory job dispatcher backed by goroutines.
// With a single worker, jobs are processed in enqueue order.
type Queue struct {
	name    string
	handler Handler

	workers int
	logger  *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 64
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:    name,
		handler: handler,
		workers: cfg.Workers,
		logger:  cfg.Logger,
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start launches the worker goroutines. Calling Start twice is a no-op.
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(context.Background())
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.run()
	}
	q.started = true
}

// Stop drains in-flight jobs and shuts the workers down.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.started = false
	q.mu.Unlock()

	close(q.jobs)
	q.wg.Wait()
	q.cancel()
}

// Enqueue submits a job without blocking. Jobs submitted while the buffer is
// full, or after Stop, are dropped and reported through the logger only.
func (q *Queue) Enqueue(job Job) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.started {
		q.logger.Warn("job queue stopped, dropping job",
			zap.String("queue", q.name),
			zap.String("type", job.Type),
		)
		return
	}
	job.Enqueued = time.Now().UTC()
	select {
	case q.jobs <- job:
	default:
		q.logger.Warn("job queue full, dropping job",
			zap.String("queue", q.name),
			zap.String("type", job.Type),
		)
	}
}

func (q *Queue) run() {
	defer q.wg.Done()
	for job := range q.jobs {
		if err := q.handler(q.ctx, job); err != nil {
			q.logger.Warn("job failed",
				zap.String("queue", q.name),
				zap.String("type", job.Type),
				zap.Error(err),
			)
		}
	}
}
