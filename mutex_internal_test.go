package filemutex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errFlock = errors.New("flock failure")

// newMockMutex returns a mutex on a temporary path whose OS lock primitive
// is replaced by a mock.
func newMockMutex(t *testing.T) (*Mutex, *Mockflocker) {
	t.Helper()
	ctrl := gomock.NewController(t)
	flock := NewMockflocker(ctrl)

	m := New(filepath.Join(t.TempDir(), "test.lock"), WithRetryInterval(Spin))
	m.flock = flock
	return m, flock
}

// assertClosed fails the test if f is still open.
func assertClosed(t *testing.T, f *os.File) {
	t.Helper()
	require.NotNil(t, f)
	assert.ErrorIs(t, f.Close(), os.ErrClosed, "the lock file should have been closed")
}

func TestNewDefaults(t *testing.T) {
	m := New("a.lock")
	assert.Equal(t, "a.lock", m.path)
	assert.Equal(t, DefaultRetryInterval, m.retry)
	assert.Nil(t, m.logger)
	assert.IsType(t, osFlocker{}, m.flock)
	assert.Nil(t, m.file, "no file is opened until the first attempt")
	assert.False(t, m.locked)

	assert.Equal(t, Spin, New("a.lock", WithRetryInterval(-time.Second)).retry)
	assert.Equal(t, time.Second, New("a.lock", WithRetryInterval(time.Second)).retry)
}

func TestUnlockFailureClosesFile(t *testing.T) {
	m, flock := newMockMutex(t)
	flock.EXPECT().TryLock(gomock.Any()).Return(true, nil)
	flock.EXPECT().Unlock(gomock.Any()).Return(errFlock)

	require.NoError(t, m.Lock())
	file := m.file

	err := m.Unlock()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnlockFailed)
	assert.ErrorIs(t, err, errFlock)

	assert.Nil(t, m.file)
	assert.False(t, m.locked)
	assertClosed(t, file)
	assert.FileExists(t, m.path)
}

func TestLockFailureClosesFile(t *testing.T) {
	m, flock := newMockMutex(t)

	var file *os.File
	flock.EXPECT().TryLock(gomock.Any()).DoAndReturn(func(f *os.File) (bool, error) {
		file = f
		return false, errFlock
	})

	err := m.Lock()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLockFailed)
	assert.ErrorIs(t, err, errFlock)
	assert.Nil(t, m.file)
	assert.False(t, m.locked)
	assertClosed(t, file)
}

func TestLockRetriesContention(t *testing.T) {
	m, flock := newMockMutex(t)

	var files []*os.File
	record := func(acquired bool) func(*os.File) (bool, error) {
		return func(f *os.File) (bool, error) {
			files = append(files, f)
			return acquired, nil
		}
	}
	gomock.InOrder(
		flock.EXPECT().TryLock(gomock.Any()).DoAndReturn(record(false)),
		flock.EXPECT().TryLock(gomock.Any()).DoAndReturn(record(false)),
		flock.EXPECT().TryLock(gomock.Any()).DoAndReturn(record(true)),
	)

	require.NoError(t, m.Lock())
	assert.True(t, m.locked)

	// The file stays open between attempts.
	require.Len(t, files, 3)
	assert.Same(t, files[0], files[1])
	assert.Same(t, files[0], files[2])
	assert.Same(t, files[0], m.file)
}

func TestTryLockContentionClosesFile(t *testing.T) {
	m, flock := newMockMutex(t)

	var file *os.File
	flock.EXPECT().TryLock(gomock.Any()).DoAndReturn(func(f *os.File) (bool, error) {
		file = f
		return false, nil
	})

	locked, err := m.TryLock()
	require.NoError(t, err)
	assert.False(t, locked)
	assert.Nil(t, m.file)
	assertClosed(t, file)
}

func TestTryLockFailureClosesFile(t *testing.T) {
	m, flock := newMockMutex(t)

	var file *os.File
	flock.EXPECT().TryLock(gomock.Any()).DoAndReturn(func(f *os.File) (bool, error) {
		file = f
		return false, errFlock
	})

	locked, err := m.TryLock()
	assert.False(t, locked)
	assert.ErrorIs(t, err, ErrLockFailed)
	assert.Nil(t, m.file)
	assertClosed(t, file)
}

func TestTryLockLeavesWaitingFileOpen(t *testing.T) {
	m, flock := newMockMutex(t)

	// Simulate a Lock call that is waiting on an open file.
	require.NoError(t, m.open())
	file := m.file
	defer file.Close()

	flock.EXPECT().TryLock(file).Return(false, nil)

	locked, err := m.TryLock()
	require.NoError(t, err)
	assert.False(t, locked)
	assert.Same(t, file, m.file, "the file belongs to the waiting Lock call")
}

func TestMisuseSkipsPrimitive(t *testing.T) {
	// The mock has no expectations, so any call into it fails the test.
	m, _ := newMockMutex(t)

	err := m.Unlock()
	assert.ErrorIs(t, err, ErrNotLocked)

	m.locked = true
	err = m.Lock()
	assert.ErrorIs(t, err, ErrAlreadyLocked)

	locked, err := m.TryLock()
	assert.NoError(t, err)
	assert.False(t, locked)
	assert.NoFileExists(t, m.path)
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, backoff(0))
	assert.Equal(t, 20*time.Millisecond, backoff(1))
	assert.Equal(t, time.Second, backoff(99))
	assert.Equal(t, time.Second, backoff(1000))
}
