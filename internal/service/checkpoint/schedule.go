package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/queue"
)

// JobPayload is the body of a compaction job.
type JobPayload struct {
	EnvID                    uuid.UUID  `json:"envId"`
	FolderCommitID           *uuid.UUID `json:"folderCommitId,omitempty"`
	FailedToAcquireLockCount int        `json:"failedToAcquireLockCount"`
}

// ScheduleTreeCheckpoint enqueues a compaction job for envID. The job id is
// envID itself, so repeated triggers collapse into one pending job.
func (s *Service) ScheduleTreeCheckpoint(ctx context.Context, envID uuid.UUID) error {
	err := s.queue.Queue(ctx, QueueName, JobName,
		JobPayload{EnvID: envID},
		s.jobOptions(envID.String(), 0),
	)
	if err != nil {
		return fmt.Errorf("schedule tree checkpoint: %w", err)
	}
	return nil
}

// scheduleRetry re-enqueues compaction after failedCount failed lock
// acquisitions. Retry ids are unique so they never collapse into the
// original job or each other.
func (s *Service) scheduleRetry(ctx context.Context, envID uuid.UUID, folderCommitID *uuid.UUID, failedCount int) error {
	jobID := fmt.Sprintf("%s-%d-%d", envID, failedCount, s.clock.Now().UnixMilli())
	delay := RetryDelay(failedCount, s.jitter())

	err := s.queue.Queue(ctx, QueueName, JobName,
		JobPayload{
			EnvID:                    envID,
			FolderCommitID:           folderCommitID,
			FailedToAcquireLockCount: failedCount,
		},
		s.jobOptions(jobID, delay),
	)
	if err != nil {
		return fmt.Errorf("schedule tree checkpoint retry: %w", err)
	}

	s.log.InfoContext(ctx, "tree checkpoint rescheduled",
		slog.String("env_id", envID.String()),
		slog.Int("failed_lock_count", failedCount),
		slog.Duration("delay", delay))
	return nil
}

func (s *Service) jobOptions(jobID string, delay time.Duration) queue.JobOptions {
	return queue.JobOptions{
		JobID:            jobID,
		Delay:            delay,
		Attempts:         s.cfg.JobAttempts,
		Backoff:          s.cfg.JobBackoff,
		RemoveOnComplete: true,
		RemoveOnFail:     true,
	}
}

// HandleJob is the queue handler for compaction jobs.
func (s *Service) HandleJob(ctx context.Context, job domain.Job) error {
	var p JobPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		// A malformed payload never succeeds; drop it instead of retrying.
		s.log.ErrorContext(ctx, "decode tree checkpoint job",
			slog.String("job_id", job.JobKey), slog.String("error", err.Error()))
		return nil
	}
	if p.EnvID == uuid.Nil {
		s.log.ErrorContext(ctx, "tree checkpoint job without env id", slog.String("job_id", job.JobKey))
		return nil
	}

	return s.Compact(ctx, p.EnvID, p.FolderCommitID, p.FailedToAcquireLockCount)
}
