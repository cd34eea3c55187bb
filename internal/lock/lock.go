// Package lock serializes pipeline operations per submission.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy is returned when another operation holds the lock
var ErrBusy = errors.New("resource is locked by another operation")

// Locker obtains a named lock without waiting. The returned func releases it.
type Locker interface {
	Obtain(ctx context.Context, key string) (func(), error)
}

// LocalLocker is an in-process Locker for single-instance deployments
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker creates a new in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

// Obtain implements Locker
func (l *LocalLocker) Obtain(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, ErrBusy
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
