//go:build windows

package filemutex

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// osFlocker locks files with LockFileEx. The lock covers the first byte of
// the file, which is allowed even when the file is empty.
type osFlocker struct{}

func (osFlocker) TryLock(f *os.File) (bool, error) {
	var ol windows.Overlapped
	err := windows.LockFileEx(windows.Handle(f.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY, 0, 1, 0, &ol)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, windows.ERROR_LOCK_VIOLATION):
		return false, nil
	default:
		return false, err
	}
}

func (osFlocker) Unlock(f *os.File) error {
	var ol windows.Overlapped
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, &ol)
}

// openFile opens or creates the lock file at path.
//
// The file is shared for reading, writing and deletion so that competing
// processes can always open it and rely on LockFileEx to arbitrate. The
// handle that is returned is not inheritable.
func openFile(path string) (*os.File, error) {
	if len(path) == 0 {
		return nil, &os.PathError{Op: "open", Path: path, Err: windows.ERROR_INVALID_NAME}
	}

	// FIXME: Handle long file paths by prefixing them with the extended path
	// prefix (\\?\). The standard library does this with [os.fixLongPath],
	// which sadly is not exposed.
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}

	const share = windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE | windows.FILE_SHARE_DELETE
	handle, err := windows.CreateFile(name, windows.GENERIC_READ|windows.GENERIC_WRITE, share, nil, windows.OPEN_ALWAYS, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}

	return os.NewFile(uintptr(handle), path), nil
}
