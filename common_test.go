package filemutex_test

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
)

const testLockFile = "test.lock"

// sharedLockPath is the lock file that the parallel tests fight over. It is
// set up by TestMain.
var sharedLockPath string

var holders atomic.Int64

// acquire records a lock acquisition by updating an atomic counter.
// It returns an error if it detects a race condition.
func acquire() error {
	if value := holders.Add(1); value != 1 {
		return fmt.Errorf("adding 1 to lock counter returned an unexpected value: %d", value)
	}
	return nil
}

// release records a lock release by updating an atomic counter.
// It returns an error if it detects a race condition.
func release() error {
	if value := holders.Add(-1); value != 0 {
		return fmt.Errorf("subtracting 1 from the lock counter returned an unexpected value: %d", value)
	}
	return nil
}

// lockPath returns a lock file path in a temporary directory owned by t.
func lockPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), testLockFile)
}
