package lock

import (
	"context"
	"errors"
	"sync"

	"github.com/beka-birhanu/lightning-maze/service/i"
)

// ErrNotHeld is returned when a local lock is released twice.
var ErrNotHeld = errors.New("lock is not held")

var _ i.Locker = &LocalLocker{}

// LocalLocker is an in-process Locker for single-replica deployments.
type LocalLocker struct {
	held map[string]struct{}
	sync.Mutex
}

// NewLocalLocker returns a LocalLocker with no keys held.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

// TryLock takes key without waiting. It returns i.ErrLockTaken when the key is held.
func (l *LocalLocker) TryLock(ctx context.Context, key string) (i.Lock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.Lock()
	defer l.Unlock()
	if _, ok := l.held[key]; ok {
		return nil, i.ErrLockTaken
	}
	l.held[key] = struct{}{}
	return &localLock{owner: l, key: key}, nil
}

type localLock struct {
	owner    *LocalLocker
	key      string
	released bool
}

func (l *localLock) Unlock(context.Context) error {
	l.owner.Lock()
	defer l.owner.Unlock()
	if l.released {
		return ErrNotHeld
	}
	l.released = true
	delete(l.owner.held, l.key)
	return nil
}
