package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a queued background job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusActive    JobStatus = "active"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

func (s JobStatus) String() string { return string(s) }

// Job is a persisted background job. JobKey deduplicates jobs within a queue.
type Job struct {
	ID               uuid.UUID       `db:"id"`
	QueueName        string          `db:"queue_name"`
	JobName          string          `db:"job_name"`
	JobKey           string          `db:"job_key"`
	Payload          json.RawMessage `db:"payload"`
	Status           JobStatus       `db:"status"`
	Attempts         int             `db:"attempts"`
	MaxAttempts      int             `db:"max_attempts"`
	BackoffMs        int64           `db:"backoff_ms"`
	RemoveOnComplete bool            `db:"remove_on_complete"`
	RemoveOnFail     bool            `db:"remove_on_fail"`
	RunAt            time.Time       `db:"run_at"`
	LastError        *string         `db:"last_error"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// RetryDelay returns the queue-level wait before the next attempt:
// BackoffMs doubled for every attempt already made after the first.
func (j Job) RetryDelay() time.Duration {
	if j.BackoffMs <= 0 || j.Attempts < 1 {
		return 0
	}
	return time.Duration(j.BackoffMs) * time.Millisecond << (j.Attempts - 1)
}

// HasAttemptsLeft reports whether a failed job may be retried.
func (j Job) HasAttemptsLeft() bool {
	return j.Attempts < j.MaxAttempts
}

// QueueStats holds job counts per status for one queue.
type QueueStats struct {
	Pending   int `db:"pending"`
	Active    int `db:"active"`
	Completed int `db:"completed"`
	Failed    int `db:"failed"`
	Total     int `db:"total"`
}
