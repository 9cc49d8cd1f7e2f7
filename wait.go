package filemutex

import (
	"context"
	"time"
)

// WaitCtx repeatedly calls [Mutex.TryLock] until the lock is acquired, an
// error is encountered or the provided context is cancelled.
//
// It returns [ErrAlreadyLocked] if m already holds the lock. If the context
// ends first, the context's error is returned and m is left unlocked.
func WaitCtx(ctx context.Context, m *Mutex) error {
	if m.Locked() {
		return m.fail("wait", ErrAlreadyLocked, nil)
	}

	// Try to acquire the lock.
	acquired, err := m.TryLock()
	if err != nil || acquired {
		return err
	}

	// Repeatedly try to acquire the lock until one of three things happens:
	// 1. The lock is acquired.
	// 2: An error is returned.
	// 3: The provided context is cancelled.
	attempt := 0
	timer := time.NewTimer(backoff(attempt))
	defer timer.Stop()
	for {
		// Wait for the timer to fire, or the context to be cancelled.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		acquired, err = m.TryLock()
		if err != nil || acquired {
			return err
		}

		attempt++
		timer.Reset(backoff(attempt))
	}
}

// backoff returns a delay that grows by 10 milliseconds with each attempt,
// up to a maximum of 1 second.
func backoff(attempt int) time.Duration {
	if attempt > 99 {
		attempt = 99
	}
	return time.Millisecond * time.Duration((1+attempt)*10)
}
