// Package jobqueue persists background jobs in the queue_jobs table.
package jobqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// Repo provides job queue persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new job queue repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const jobColumns = `id, queue_name, job_name, job_key, payload, status, attempts, max_attempts,
       backoff_ms, remove_on_complete, remove_on_fail, run_at, last_error, created_at, updated_at`

const enqueueSQL = `
INSERT INTO queue_jobs (queue_name, job_name, job_key, payload, max_attempts, backoff_ms,
                        remove_on_complete, remove_on_fail, run_at)
VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8, $9)
ON CONFLICT (queue_name, job_key) DO NOTHING
RETURNING id`

const claimDueSQL = `
UPDATE queue_jobs
SET status = 'active', attempts = attempts + 1, updated_at = now()
WHERE id IN (
    SELECT id
    FROM queue_jobs
    WHERE queue_name = $1
      AND status = 'pending'
      AND run_at <= $2
    ORDER BY run_at, created_at
    LIMIT $3
    FOR UPDATE SKIP LOCKED
)
RETURNING ` + jobColumns

const markCompletedSQL = `
UPDATE queue_jobs
SET status = 'completed', last_error = NULL, updated_at = now()
WHERE id = $1`

const markFailedSQL = `
UPDATE queue_jobs
SET status = 'failed', last_error = $2, updated_at = now()
WHERE id = $1`

const retrySQL = `
UPDATE queue_jobs
SET status = 'pending', run_at = $2, last_error = $3, updated_at = now()
WHERE id = $1`

const deleteSQL = `DELETE FROM queue_jobs WHERE id = $1`

const resetStaleSQL = `
UPDATE queue_jobs
SET status = 'pending', updated_at = now()
WHERE queue_name = $1
  AND status = 'active'
  AND updated_at < $2`

const statsSQL = `
SELECT
    count(*) FILTER (WHERE status = 'pending')   AS pending,
    count(*) FILTER (WHERE status = 'active')    AS active,
    count(*) FILTER (WHERE status = 'completed') AS completed,
    count(*) FILTER (WHERE status = 'failed')    AS failed,
    count(*)                                     AS total
FROM queue_jobs
WHERE queue_name = $1`

// Enqueue inserts a job. It reports false, without error, when a job with
// the same key already exists in the queue.
func (r *Repo) Enqueue(ctx context.Context, job domain.Job) (bool, error) {
	payload := job.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	var id uuid.UUID
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, enqueueSQL,
		job.QueueName, job.JobName, job.JobKey, string(payload), job.MaxAttempts, job.BackoffMs,
		job.RemoveOnComplete, job.RemoveOnFail, job.RunAt,
	).Scan(&id)
	if err != nil {
		mapped := postgres.MapError(err, "jobqueue.Enqueue")
		if errors.Is(mapped, domain.ErrNotFound) {
			return false, nil
		}
		return false, mapped
	}
	return true, nil
}

// ClaimDue moves up to limit due pending jobs to active, counting the
// attempt, and returns them. Rows locked by another worker are skipped.
func (r *Repo) ClaimDue(ctx context.Context, queueName string, now time.Time, limit int) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &jobs, claimDueSQL, queueName, now, limit); err != nil {
		return nil, postgres.MapError(err, "jobqueue.ClaimDue")
	}
	return jobs, nil
}

// MarkCompleted marks a job as successfully processed.
func (r *Repo) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "jobqueue.MarkCompleted", markCompletedSQL, id)
}

// MarkFailed marks a job as permanently failed with error message.
func (r *Repo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	return r.exec(ctx, "jobqueue.MarkFailed", markFailedSQL, id, errMsg)
}

// Retry returns a failed attempt to pending, due at runAt.
func (r *Repo) Retry(ctx context.Context, id uuid.UUID, runAt time.Time, errMsg string) error {
	return r.exec(ctx, "jobqueue.Retry", retrySQL, id, runAt, errMsg)
}

// Delete removes a job, freeing its key for reuse.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "jobqueue.Delete", deleteSQL, id)
}

// ResetStale returns active jobs not touched since before to pending
// (jobs orphaned by a crashed worker).
func (r *Repo) ResetStale(ctx context.Context, queueName string, before time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, resetStaleSQL, queueName, before)
	if err != nil {
		return 0, postgres.MapError(err, "jobqueue.ResetStale")
	}
	return int(tag.RowsAffected()), nil
}

// Stats returns aggregate counts by status.
func (r *Repo) Stats(ctx context.Context, queueName string) (domain.QueueStats, error) {
	var stats domain.QueueStats
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &stats, statsSQL, queueName); err != nil {
		return domain.QueueStats{}, postgres.MapError(err, "jobqueue.Stats")
	}
	return stats, nil
}

func (r *Repo) exec(ctx context.Context, op, sql string, args ...any) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, op)
	}
	return nil
}
