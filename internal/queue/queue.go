// Package queue runs named background job queues persisted in PostgreSQL.
//
// Jobs are enqueued with Queue, handlers are registered with Start and the
// worker loop is driven by Run. A job that returns an error is retried with
// exponential backoff until its attempts are used up.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/metrics"
)

type jobRepo interface {
	Enqueue(ctx context.Context, job domain.Job) (bool, error)
	ClaimDue(ctx context.Context, queueName string, now time.Time, limit int) ([]domain.Job, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	Retry(ctx context.Context, id uuid.UUID, runAt time.Time, errMsg string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ResetStale(ctx context.Context, queueName string, before time.Time) (int, error)
	Stats(ctx context.Context, queueName string) (domain.QueueStats, error)
}

// Handler processes one job. A returned error consumes one attempt.
type Handler func(ctx context.Context, job domain.Job) error

// JobOptions controls identity, timing and retention of a queued job.
type JobOptions struct {
	// JobID deduplicates: a second job with the same id in the same queue is
	// ignored while the first one exists. Empty means a random id.
	JobID string
	// Delay postpones the first run.
	Delay time.Duration
	// Attempts is the total number of runs allowed, 1 when zero.
	Attempts int
	// Backoff is the wait before the second run, doubled for each later one.
	Backoff time.Duration

	RemoveOnComplete bool
	RemoveOnFail     bool
}

// Config holds the worker loop settings.
type Config struct {
	PollInterval time.Duration
	Concurrency  int
	BatchSize    int
	StaleAfter   time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.BatchSize <= 0 {
		c.BatchSize = c.Concurrency
	}
	if c.StaleAfter <= 0 {
		c.StaleAfter = 5 * time.Minute
	}
	return c
}

// Service enqueues jobs and runs registered handlers.
type Service struct {
	log     *slog.Logger
	repo    jobRepo
	clock   clockwork.Clock
	cfg     Config
	metrics *metrics.Collector

	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewService creates a new queue service. metrics may be nil.
func NewService(log *slog.Logger, repo jobRepo, clock clockwork.Clock, cfg Config, m *metrics.Collector) *Service {
	return &Service{
		log:      log.With("service", "queue"),
		repo:     repo,
		clock:    clock,
		cfg:      cfg.withDefaults(),
		metrics:  m,
		handlers: make(map[string]Handler),
	}
}

// Queue enqueues a job with a JSON-encoded payload.
func (s *Service) Queue(ctx context.Context, name, jobName string, payload any, opts JobOptions) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("queue.Queue: encode payload: %w", err)
	}

	key := opts.JobID
	if key == "" {
		key = uuid.NewString()
	}
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	created, err := s.repo.Enqueue(ctx, domain.Job{
		QueueName:        name,
		JobName:          jobName,
		JobKey:           key,
		Payload:          raw,
		MaxAttempts:      attempts,
		BackoffMs:        opts.Backoff.Milliseconds(),
		RemoveOnComplete: opts.RemoveOnComplete,
		RemoveOnFail:     opts.RemoveOnFail,
		RunAt:            s.clock.Now().Add(opts.Delay),
	})
	if err != nil {
		return fmt.Errorf("queue.Queue: %w", err)
	}

	if !created {
		s.log.DebugContext(ctx, "job already queued",
			slog.String("queue", name), slog.String("job_id", key))
	}
	return nil
}

// Start registers the handler for a queue. Registering twice replaces the
// previous handler.
func (s *Service) Start(name string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = h
}

// Stats returns job counts for a queue.
func (s *Service) Stats(ctx context.Context, name string) (domain.QueueStats, error) {
	return s.repo.Stats(ctx, name)
}

func (s *Service) registered() map[string]Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Handler, len(s.handlers))
	for name, h := range s.handlers {
		out[name] = h
	}
	return out
}
