package filemutex

import "os"

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_flock_test.go -package=filemutex

// flocker acquires and releases exclusive advisory locks on open files.
type flocker interface {
	// TryLock makes a single non-blocking attempt to lock f exclusively.
	// It returns false and a nil error if the lock is held elsewhere.
	TryLock(f *os.File) (bool, error)

	// Unlock releases the lock held on f.
	Unlock(f *os.File) error
}
