package lock

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	release, err := l.Obtain(ctx, "generate:s1")
	require.NoError(t, err)

	_, err = l.Obtain(ctx, "generate:s1")
	assert.ErrorIs(t, err, ErrBusy)

	other, err := l.Obtain(ctx, "generate:s2")
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := l.Obtain(ctx, "generate:s1")
	require.NoError(t, err)
	again()
}

func TestLocalLockerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalLocker().Obtain(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalLockerSingleWinner(t *testing.T) {
	l := NewLocalLocker()
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Obtain(context.Background(), "same"); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}
