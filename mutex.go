package filemutex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultName is the name of the lock file used when no path is given.
const DefaultName = "mutex.lock"

// DefaultPath returns the lock file path shared by every mutex that was
// created without an explicit path. It lives in the temporary directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultName)
}

// Locker is the capability set of a mutex.
type Locker interface {
	Lock() error
	TryLock() (bool, error)
	Unlock() error
}

// Mutex is a mutual exclusion lock shared between processes through an
// advisory lock on a lock file.
//
// All processes that want to coordinate must use the same path. The lock is
// advisory: it only excludes other processes that also lock the file. It is
// not reentrant.
//
// The lock file is created on the first lock attempt and is never deleted or
// written to. Only its lock state changes.
//
// A Mutex is safe for concurrent use, but the lock belongs to the Mutex
// rather than to the goroutine that acquired it.
type Mutex struct {
	path   string
	retry  time.Duration
	logger *log.Logger
	flock  flocker

	mutex  sync.Mutex
	file   *os.File
	locked bool
}

var _ Locker = (*Mutex)(nil)

// New returns a mutex for the lock file at path. If path is empty,
// [DefaultPath] is used.
//
// No file is opened until the first lock attempt.
func New(path string, options ...Option) *Mutex {
	if path == "" {
		path = DefaultPath()
	}

	m := &Mutex{
		path:  path,
		retry: DefaultRetryInterval,
		flock: osFlocker{},
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Default returns a mutex for the lock file at [DefaultPath].
func Default(options ...Option) *Mutex {
	return New("", options...)
}

// Path returns the path of the lock file.
func (m *Mutex) Path() string {
	return m.path
}

// Locked reports whether m currently holds the lock.
func (m *Mutex) Locked() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.locked
}

// Lock acquires the lock, blocking until it is available.
//
// While another process holds the lock, Lock retries at the interval
// configured by [WithRetryInterval]. There is no cancellation; callers that
// need a bounded wait should use [Mutex.TryLock] or [WaitCtx].
//
// It returns [ErrAlreadyLocked] if m already holds the lock, and
// [ErrOpenFailed] if the lock file can't be opened.
func (m *Mutex) Lock() error {
	for attempt := 0; ; attempt++ {
		acquired, err := m.attempt()
		if err != nil || acquired {
			return err
		}

		if m.logger != nil {
			m.logger.Info("Waiting for lock", "path", m.path, "attempt", attempt+1)
		}

		if m.retry > 0 {
			time.Sleep(m.retry)
		} else {
			runtime.Gosched()
		}
	}
}

// attempt makes one lock attempt on behalf of Lock. The lock file is left
// open after contention so that the next attempt can reuse it.
func (m *Mutex) attempt() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.locked {
		return false, m.fail("lock", ErrAlreadyLocked, nil)
	}

	if err := m.open(); err != nil {
		return false, m.fail("lock", ErrOpenFailed, err)
	}

	acquired, err := m.flock.TryLock(m.file)
	if err != nil {
		m.close()
		return false, m.fail("lock", ErrLockFailed, err)
	}

	m.locked = acquired
	return acquired, nil
}

// TryLock makes a single attempt to acquire the lock without blocking. It
// reports whether the lock was acquired.
//
// If m already holds the lock, TryLock returns false without touching the
// lock file. Contention is not an error.
func (m *Mutex) TryLock() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.locked {
		return false, nil
	}

	// A blocked Lock call may already have the file open. In that case the
	// file belongs to it and we leave it open.
	opened := m.file == nil
	if err := m.open(); err != nil {
		return false, m.fail("trylock", ErrOpenFailed, err)
	}

	acquired, err := m.flock.TryLock(m.file)
	if err != nil || !acquired {
		if opened {
			m.close()
		}
		if err != nil {
			return false, m.fail("trylock", ErrLockFailed, err)
		}
		return false, nil
	}

	m.locked = true
	return true, nil
}

// Unlock releases the lock and closes the lock file. The file itself stays
// on disk.
//
// It returns [ErrNotLocked] if m does not hold the lock. If the operating
// system fails to release the lock, the file is still closed, which drops
// the lock, and [ErrUnlockFailed] is returned.
func (m *Mutex) Unlock() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.locked {
		return m.fail("unlock", ErrNotLocked, nil)
	}

	unlockErr := m.flock.Unlock(m.file)
	closeErr := m.close()
	m.locked = false

	switch {
	case unlockErr != nil:
		return m.fail("unlock", ErrUnlockFailed, unlockErr)
	case closeErr != nil:
		return m.fail("unlock", ErrUnlockFailed, closeErr)
	}
	return nil
}

// WithLock runs fn while holding the lock. The lock is released even if fn
// panics.
//
// If fn fails its error is returned, joined with any error from releasing
// the lock.
func (m *Mutex) WithLock(fn func() error) (err error) {
	if err := m.Lock(); err != nil {
		return err
	}

	defer func() {
		if unlockErr := m.Unlock(); unlockErr != nil {
			err = errors.Join(err, unlockErr)
		}
	}()

	return fn()
}

// open opens the lock file if it isn't open already. The caller must hold
// m.mutex.
func (m *Mutex) open() error {
	if m.file != nil {
		return nil
	}
	file, err := openFile(m.path)
	if err != nil {
		return err
	}
	m.file = file
	return nil
}

// close closes the lock file, which also releases any lock held on it. The
// caller must hold m.mutex.
func (m *Mutex) close() error {
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}

func (m *Mutex) fail(op string, kind, err error) error {
	return &Error{Op: op, Path: m.path, Kind: kind, Err: err}
}
