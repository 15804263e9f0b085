package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
)

// ErrLeaseHeld is returned by Locker.Obtain when another runner holds the key.
var ErrLeaseHeld = errors.New("lease is held by another runner")

// Lease is an obtained single-runner lock.
type Lease interface {
	Release(ctx context.Context) error
}

// Locker hands out short leases so that only one instance acts on a tick.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// RedisLocker implements Locker with github.com/bsm/redislock.
type RedisLocker struct {
	client *redislock.Client
}

func NewRedisLocker(client *redislock.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLeaseHeld
	}
	if err != nil {
		return nil, err
	}
	return lock, nil
}
