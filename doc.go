// Package filemutex provides a mutual exclusion lock that is shared between
// processes through an advisory lock on a lock file.
//
// Every process that opens a [Mutex] on the same path takes part in the same
// lock. Exclusivity is delegated to the operating system: flock on Unix-like
// systems and LockFileEx on Windows. The lock is released by [Mutex.Unlock],
// or by the operating system when the process exits.
//
//	m := filemutex.New("/var/run/counter.lock")
//	if err := m.Lock(); err != nil {
//		return err
//	}
//	defer m.Unlock()
package filemutex
