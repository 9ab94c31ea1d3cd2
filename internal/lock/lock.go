package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrLockNotAcquired = errors.New("slot lock not acquired")

// Locker guards a critical section per key.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// SlotKey is the lock key for a (doctor, office, instant) booking slot.
func SlotKey(doctorID, officeID uint, at time.Time) string {
	return fmt.Sprintf("lock:turno:%d:%d:%d", doctorID, officeID, at.Unix())
}

// LocalLocker is an in-process keyed mutex, used when Redis is not
// configured. Contention waits for the holder instead of failing.
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*localEntry
}

type localEntry struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{keys: make(map[string]*localEntry)}
}

func (l *LocalLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	e, ok := l.keys[key]
	if !ok {
		e = &localEntry{ch: make(chan struct{}, 1)}
		l.keys[key] = e
	}
	e.refs++
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.keys, key)
		}
		l.mu.Unlock()
	}()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		return ErrLockNotAcquired
	}
	defer func() { <-e.ch }()

	return fn(ctx)
}
