package filemutex

import (
	"time"

	"github.com/charmbracelet/log"
)

// DefaultRetryInterval is the delay between attempts made by [Mutex.Lock]
// while the lock is held by someone else.
const DefaultRetryInterval = 10 * time.Millisecond

// Spin is a retry interval that makes [Mutex.Lock] retry without sleeping.
// It favors latency over CPU time.
const Spin time.Duration = 0

// Option configures a [Mutex].
type Option func(*Mutex)

// WithRetryInterval sets the fixed delay between contended lock attempts
// made by [Mutex.Lock]. A delay of zero or less selects [Spin].
func WithRetryInterval(d time.Duration) Option {
	return func(m *Mutex) {
		if d < 0 {
			d = Spin
		}
		m.retry = d
	}
}

// WithLogger causes [Mutex.Lock] to log an info message each time it has to
// wait for the lock.
func WithLogger(logger *log.Logger) Option {
	return func(m *Mutex) {
		m.logger = logger
	}
}
