package i

import (
	"context"
	"errors"
)

var (
	// ErrLockTaken is returned by TryLock when another holder owns the key.
	ErrLockTaken = errors.New("lock is held by another driver")

	// ErrRunNotFound is returned by RunRepo when no summary exists.
	ErrRunNotFound = errors.New("run not found")
)

// Lock is a held lock.
type Lock interface {
	Unlock(ctx context.Context) error
}

// Locker hands out exclusive, non-blocking locks by key.
type Locker interface {
	TryLock(ctx context.Context, key string) (Lock, error)
}
