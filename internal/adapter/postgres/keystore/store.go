// Package keystore is a small key/value store with expiring entries and
// mutual-exclusion locks, kept in the key_store table so that every worker
// process sees the same locks.
//
// The store never joins a transaction carried by the context: a lock taken
// inside a transaction would be invisible to other workers until commit.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
	"github.com/heartmarshall/pitkeeper/internal/domain"
)

var (
	// ErrLockTimeout is returned by AcquireLock when the keys stayed held
	// by someone else for the whole wait budget.
	ErrLockTimeout = errors.New("keystore: lock acquisition timed out")
	// ErrLockNotHeld is returned by Release when the lock expired or was
	// force-deleted before release.
	ErrLockNotHeld = errors.New("keystore: lock not held")

	errKeysBusy = errors.New("keystore: keys busy")
)

const (
	defaultPollInterval    = 100 * time.Millisecond
	defaultMaxPollInterval = time.Second
)

// Store implements acquireLock/getItem/deleteItem over PostgreSQL.
type Store struct {
	db           postgres.Querier
	pollInterval time.Duration
	maxPoll      time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPollInterval sets the initial and maximum wait between acquisition attempts.
func WithPollInterval(initial, max time.Duration) Option {
	return func(s *Store) {
		if initial > 0 {
			s.pollInterval = initial
		}
		if max > 0 {
			s.maxPoll = max
		}
	}
}

// New creates a Store.
func New(db postgres.Querier, opts ...Option) *Store {
	s := &Store{
		db:           db,
		pollInterval: defaultPollInterval,
		maxPoll:      defaultMaxPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

// Rows are only taken over once expired; a live row held by another token
// makes the upsert a no-op and the key is missing from RETURNING.
const acquireSQL = `
INSERT INTO key_store (key, value, expires_at)
SELECT k, $2, now() + make_interval(secs => $3)
FROM unnest($1::text[]) AS k
ON CONFLICT (key) DO UPDATE
    SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
    WHERE key_store.expires_at IS NOT NULL AND key_store.expires_at <= now()
RETURNING key`

const releaseSQL = `DELETE FROM key_store WHERE key = ANY($1::text[]) AND value = $2`

const getItemSQL = `
SELECT value
FROM key_store
WHERE key = $1
  AND (expires_at IS NULL OR expires_at > now())`

const deleteItemSQL = `DELETE FROM key_store WHERE key = $1`

// ---------------------------------------------------------------------------
// Locks
// ---------------------------------------------------------------------------

// Lock is a held lock over one or more keys.
type Lock struct {
	store *Store
	keys  []string
	token string
}

// Keys returns the locked keys.
func (l *Lock) Keys() []string { return l.keys }

// AcquireLock takes all keys at once. The lock expires after ttl unless
// released earlier; acquisition is retried with exponential backoff for at
// most ttl before ErrLockTimeout is returned.
func (s *Store) AcquireLock(ctx context.Context, keys []string, ttl time.Duration) (*Lock, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("keystore.AcquireLock: %w", domain.ErrValidation)
	}

	token := uuid.NewString()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.pollInterval
	b.MaxInterval = s.maxPoll
	b.MaxElapsedTime = ttl

	op := func() error {
		err := s.tryAcquire(ctx, keys, token, ttl)
		if err == nil || errors.Is(err, errKeysBusy) {
			return err
		}
		return backoff.Permanent(err)
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if errors.Is(err, errKeysBusy) {
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, keys)
		}
		return nil, err
	}

	return &Lock{store: s, keys: keys, token: token}, nil
}

func (s *Store) tryAcquire(ctx context.Context, keys []string, token string, ttl time.Duration) error {
	rows, err := s.db.Query(ctx, acquireSQL, keys, token, ttl.Seconds())
	if err != nil {
		return postgres.MapError(err, "keystore.AcquireLock")
	}

	acquired, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return postgres.MapError(err, "keystore.AcquireLock")
	}

	if len(acquired) == len(keys) {
		return nil
	}

	// Partial acquisition: give back what we took so others can progress.
	if len(acquired) > 0 {
		if _, err := s.db.Exec(ctx, releaseSQL, acquired, token); err != nil {
			return postgres.MapError(err, "keystore.AcquireLock")
		}
	}

	return errKeysBusy
}

// Release frees the lock. It returns ErrLockNotHeld when none of the keys
// is still held by this lock.
func (l *Lock) Release(ctx context.Context) error {
	tag, err := l.store.db.Exec(ctx, releaseSQL, l.keys, l.token)
	if err != nil {
		return postgres.MapError(err, "keystore.Release")
	}
	if tag.RowsAffected() == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

// GetItem returns the value stored under key.
// Returns domain.ErrNotFound when the key is absent or expired.
func (s *Store) GetItem(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.db.QueryRow(ctx, getItemSQL, key).Scan(&value); err != nil {
		return "", postgres.MapError(err, "keystore.GetItem")
	}
	return value, nil
}

// DeleteItem removes key regardless of who holds it. Deleting a missing key
// is not an error.
func (s *Store) DeleteItem(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, deleteItemSQL, key); err != nil {
		return postgres.MapError(err, "keystore.DeleteItem")
	}
	return nil
}
