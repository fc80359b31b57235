package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/lightning-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const defaultExpiry = 10 * time.Second

var _ i.Locker = &RedisLocker{}

// RedisLocker hands out redsync mutexes so that one session is stepped by a
// single driver even when several API replicas serve it.
type RedisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

// NewRedisLocker wraps client in a redsync pool. A non-positive expiry selects the default.
func NewRedisLocker(client *redis.Client, expiry time.Duration) *RedisLocker {
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	pool := goredis.NewPool(client)
	return &RedisLocker{
		rs:     redsync.New(pool),
		expiry: expiry,
	}
}

// TryLock takes key without waiting. It returns i.ErrLockTaken when the key is held.
func (r *RedisLocker) TryLock(ctx context.Context, key string) (i.Lock, error) {
	mutex := r.rs.NewMutex(key, redsync.WithTries(1), redsync.WithExpiry(r.expiry))
	if err := mutex.TryLockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
			return nil, i.ErrLockTaken
		}
		return nil, fmt.Errorf("locking %s: %w", key, err)
	}
	return &redisLock{mutex: mutex}, nil
}

type redisLock struct {
	mutex *redsync.Mutex
}

func (l *redisLock) Unlock(ctx context.Context) error {
	ok, err := l.mutex.UnlockContext(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("lock %s expired before release", l.mutex.Name())
	}
	return nil
}
