package app

import (
	"context"
	"time"

	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres/keystore"
	"github.com/heartmarshall/pitkeeper/internal/service/checkpoint"
)

// keystoreLocker exposes the keystore as a checkpoint.Locker.
type keystoreLocker struct {
	store *keystore.Store
}

var _ checkpoint.Locker = keystoreLocker{}

func (l keystoreLocker) AcquireLock(ctx context.Context, keys []string, ttl time.Duration) (checkpoint.Lock, error) {
	lock, err := l.store.AcquireLock(ctx, keys, ttl)
	if err != nil {
		return nil, err
	}
	return lock, nil
}

func (l keystoreLocker) DeleteItem(ctx context.Context, key string) error {
	return l.store.DeleteItem(ctx, key)
}
