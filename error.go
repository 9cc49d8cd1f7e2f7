package filemutex

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyLocked is returned by [Mutex.Lock] when the mutex is already
	// held by the same instance.
	ErrAlreadyLocked = errors.New("lock already acquired")

	// ErrNotLocked is returned by [Mutex.Unlock] when the mutex is not held
	// by the instance.
	ErrNotLocked = errors.New("lock not acquired")

	// ErrOpenFailed is returned when the lock file could not be opened or
	// created.
	ErrOpenFailed = errors.New("failed to open lock file")

	// ErrLockFailed is returned when the operating system rejected a lock
	// request for a reason other than contention.
	ErrLockFailed = errors.New("failed to lock")

	// ErrUnlockFailed is returned when the operating system failed to release
	// the lock, or the lock file could not be closed afterward.
	ErrUnlockFailed = errors.New("failed to unlock")
)

// Error records a failed mutex operation.
//
// Kind is one of the sentinel errors declared by this package. Err is the
// underlying operating system error, if any. Both are reachable through
// [errors.Is] and [errors.As].
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("filemutex: %s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("filemutex: %s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap returns the error kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
