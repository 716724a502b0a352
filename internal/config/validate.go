package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port))
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level))
	}

	if c.PIT.TreeCheckpointWindow < 1 {
		errs = append(errs, fmt.Errorf("pit.tree_checkpoint_window must be >= 1 (got %d)", c.PIT.TreeCheckpointWindow))
	}
	if c.PIT.CheckpointWindow < 1 {
		errs = append(errs, fmt.Errorf("pit.checkpoint_window must be >= 1 (got %d)", c.PIT.CheckpointWindow))
	}
	if c.PIT.MaxLockRetries < 1 {
		errs = append(errs, fmt.Errorf("pit.max_lock_retries must be >= 1 (got %d)", c.PIT.MaxLockRetries))
	}

	if c.Lock.ShortTTL <= 0 {
		errs = append(errs, fmt.Errorf("lock.short_ttl must be > 0 (got %s)", c.Lock.ShortTTL))
	}
	if c.Lock.LongTTL < c.Lock.ShortTTL {
		errs = append(errs, fmt.Errorf("lock.long_ttl (%s) must be >= short_ttl (%s)", c.Lock.LongTTL, c.Lock.ShortTTL))
	}
	if c.Lock.PollInitial <= 0 || c.Lock.PollMax < c.Lock.PollInitial {
		errs = append(errs, fmt.Errorf("lock poll interval must satisfy 0 < poll_initial <= poll_max (got %s, %s)",
			c.Lock.PollInitial, c.Lock.PollMax))
	}

	if c.Queue.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("queue.poll_interval must be > 0 (got %s)", c.Queue.PollInterval))
	}
	if c.Queue.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("queue.concurrency must be >= 1 (got %d)", c.Queue.Concurrency))
	}
	if c.Queue.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("queue.batch_size must be >= 1 (got %d)", c.Queue.BatchSize))
	}
	if c.Queue.JobAttempts < 1 {
		errs = append(errs, fmt.Errorf("queue.job_attempts must be >= 1 (got %d)", c.Queue.JobAttempts))
	}
	if c.Queue.JobBackoff < 0 {
		errs = append(errs, fmt.Errorf("queue.job_backoff must be >= 0 (got %s)", c.Queue.JobBackoff))
	}

	return errors.Join(errs...)
}
