package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/metrics"
	"github.com/heartmarshall/pitkeeper/pkg/ctxutil"
)

// Run resets jobs orphaned by crashed workers, then polls every registered
// queue until ctx is cancelled. In-flight jobs finish before Run returns.
func (s *Service) Run(ctx context.Context) error {
	for name := range s.registered() {
		n, err := s.repo.ResetStale(ctx, name, s.clock.Now().Add(-s.cfg.StaleAfter))
		if err != nil {
			return fmt.Errorf("queue.Run: reset stale jobs: %w", err)
		}
		if n > 0 {
			s.log.WarnContext(ctx, "reset stale jobs", slog.String("queue", name), slog.Int("count", n))
		}
	}

	s.log.InfoContext(ctx, "queue workers started",
		slog.Int("concurrency", s.cfg.Concurrency),
		slog.Duration("poll_interval", s.cfg.PollInterval))

	ticker := s.clock.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := s.ProcessDue(ctx); err != nil && ctx.Err() == nil {
			s.log.ErrorContext(ctx, "poll queue", slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			s.log.Info("queue workers stopped")
			return nil
		case <-ticker.Chan():
		}
	}
}

// ProcessDue claims the due jobs of every registered queue and runs them on
// a pool bounded by the configured concurrency. It returns the number of
// jobs run once they have all finished.
func (s *Service) ProcessDue(ctx context.Context) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	var (
		processed int
		errs      []error
	)

	for name, handler := range s.registered() {
		jobs, err := s.repo.ClaimDue(ctx, name, s.clock.Now(), s.cfg.BatchSize)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, job := range jobs {
			processed++
			g.Go(func() error {
				s.process(gctx, handler, job)
				return nil
			})
		}
	}

	_ = g.Wait()
	return processed, errors.Join(errs...)
}

func (s *Service) process(ctx context.Context, handler Handler, job domain.Job) {
	log := s.log.With(
		slog.String("queue", job.QueueName),
		slog.String("job", job.JobName),
		slog.String("job_id", job.JobKey),
		slog.Int("attempt", job.Attempts),
	)

	runErr := s.run(ctxutil.WithJobID(ctx, job.JobKey), handler, job)

	// Bookkeeping must land even when shutdown cancelled the handler.
	ctx = context.WithoutCancel(ctx)

	if runErr == nil {
		var err error
		if job.RemoveOnComplete {
			err = s.repo.Delete(ctx, job.ID)
		} else {
			err = s.repo.MarkCompleted(ctx, job.ID)
		}
		if err != nil {
			log.ErrorContext(ctx, "record job completion", slog.String("error", err.Error()))
		}
		s.metrics.JobProcessed(job.QueueName, metrics.JobCompleted)
		return
	}

	if job.HasAttemptsLeft() {
		runAt := s.clock.Now().Add(job.RetryDelay())
		if err := s.repo.Retry(ctx, job.ID, runAt, runErr.Error()); err != nil {
			log.ErrorContext(ctx, "schedule job retry", slog.String("error", err.Error()))
		}
		log.WarnContext(ctx, "job failed, will retry",
			slog.String("error", runErr.Error()),
			slog.Time("run_at", runAt))
		s.metrics.JobProcessed(job.QueueName, metrics.JobRetried)
		return
	}

	var err error
	if job.RemoveOnFail {
		err = s.repo.Delete(ctx, job.ID)
	} else {
		err = s.repo.MarkFailed(ctx, job.ID, runErr.Error())
	}
	if err != nil {
		log.ErrorContext(ctx, "record job failure", slog.String("error", err.Error()))
	}
	log.ErrorContext(ctx, "job failed", slog.String("error", runErr.Error()))
	s.metrics.JobProcessed(job.QueueName, metrics.JobFailed)
}

// run calls the handler, converting a panic into an error.
func (s *Service) run(ctx context.Context, handler Handler, job domain.Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return handler(ctx, job)
}
