package checkpoint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/metrics"
)

// Compact runs one compaction attempt for envID under the environment lock.
//
// failedToAcquireLockCount is the number of earlier attempts that could not
// take the lock. A failed acquisition reschedules the job with backoff until
// MaxLockRetries is reached, then gives up silently. Only errors raised while
// building the checkpoint are returned, so that the queue retries them.
func (s *Service) Compact(ctx context.Context, envID uuid.UUID, folderCommitID *uuid.UUID, failedToAcquireLockCount int) error {
	log := s.log.With(
		slog.String("env_id", envID.String()),
		slog.Int("failed_lock_count", failedToAcquireLockCount),
	)
	key := LockKey(envID)

	if failedToAcquireLockCount > 1 {
		// A crashed holder may have left the key behind.
		if err := s.locker.DeleteItem(ctx, key); err != nil {
			log.WarnContext(ctx, "clear stale tree checkpoint lock", slog.String("error", err.Error()))
		}
	}

	lock, err := s.locker.AcquireLock(ctx, []string{key}, s.lockTTL(failedToAcquireLockCount))
	if err != nil {
		return s.onLockFailure(ctx, log, envID, folderCommitID, failedToAcquireLockCount, err)
	}

	defer s.release(ctx, log, key, lock)

	start := s.clock.Now()
	res, err := s.buildInTx(ctx, envID, folderCommitID)
	if err != nil {
		s.metrics.Compaction(metrics.OutcomeFailed)
		log.ErrorContext(ctx, "create tree checkpoint", slog.String("error", err.Error()))
		return fmt.Errorf("compact env %s: %w", envID, err)
	}

	s.metrics.Compaction(res.Outcome)
	if res.Outcome == metrics.OutcomeCreated {
		s.metrics.CheckpointBuilt(len(res.Resources), s.clock.Since(start))
	}
	return nil
}

// lockTTL returns the lease for attempt failedCount+1: short for the first
// three attempts, long once contention looks persistent.
func (s *Service) lockTTL(failedCount int) time.Duration {
	if failedCount >= 3 {
		return s.cfg.LongLockTTL
	}
	return s.cfg.ShortLockTTL
}

func (s *Service) onLockFailure(
	ctx context.Context,
	log *slog.Logger,
	envID uuid.UUID,
	folderCommitID *uuid.UUID,
	failedCount int,
	lockErr error,
) error {
	if failedCount < s.cfg.MaxLockRetries {
		log.InfoContext(ctx, "tree checkpoint lock busy", slog.String("error", lockErr.Error()))
		s.metrics.Compaction(metrics.OutcomeLockRetry)
		return s.scheduleRetry(ctx, envID, folderCommitID, failedCount+1)
	}

	log.ErrorContext(ctx, "giving up on tree checkpoint after repeated lock failures",
		slog.String("error", lockErr.Error()))
	s.metrics.Compaction(metrics.OutcomeLockGaveUp)

	if err := s.locker.DeleteItem(ctx, LockKey(envID)); err != nil {
		log.WarnContext(ctx, "force delete tree checkpoint lock", slog.String("error", err.Error()))
	}
	return nil
}

// release frees the lock, force-deleting the key when release fails so the
// environment cannot stay locked until the lease runs out.
func (s *Service) release(ctx context.Context, log *slog.Logger, key string, lock Lock) {
	ctx = context.WithoutCancel(ctx)

	if err := lock.Release(ctx); err != nil {
		log.WarnContext(ctx, "release tree checkpoint lock", slog.String("error", err.Error()))
		if err := s.locker.DeleteItem(ctx, key); err != nil {
			log.ErrorContext(ctx, "force delete tree checkpoint lock", slog.String("error", err.Error()))
		}
	}
}
