//go:build !windows

package filemutex

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// Lennart Poettering provides a helpful overview of the hazards of file
// locking in Linux here:
// https://0pointer.net/blog/projects/locking.html
//
// We use flock rather than the posix fcntl locks. The lock acquired by flock
// is attached to the open file description, not the calling process as a
// whole, so two mutexes in the same process still exclude each other and
// closing an unrelated descriptor for the same file won't drop our lock.

// osFlocker locks files with the flock system call.
//
// https://man7.org/linux/man-pages/man2/flock.2.html
type osFlocker struct{}

func (osFlocker) TryLock(f *os.File) (bool, error) {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	switch {
	case err == nil:
		return true, nil
	// Some older systems report EAGAIN rather than EWOULDBLOCK, so we treat
	// both as contention.
	case errors.Is(err, unix.EWOULDBLOCK), errors.Is(err, unix.EAGAIN):
		return false, nil
	default:
		return false, err
	}
}

func (osFlocker) Unlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}

// openFile opens the lock file at path for reading and writing, creating it
// if it doesn't exist.
//
// Note that we don't make the file readable by other users. Any process that
// can open the file can lock it, so an unprivileged process could otherwise
// take the lock and never release it. Processes that coordinate through the
// lock must run as the same user, or share a file created beforehand with
// suitable permissions.
func openFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
}
