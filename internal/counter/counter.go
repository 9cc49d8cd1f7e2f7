// Package counter reads and increments an integer stored as decimal text in
// a file. It does no locking of its own: callers serialize access, typically
// with a filemutex.Mutex.
package counter

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidCounter is returned when a counter file holds something other
// than a base-10 integer.
var ErrInvalidCounter = errors.New("invalid counter value")

// Read returns the value stored in the counter file at path. A missing or
// empty file holds zero.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read counter file \"%s\": %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w in \"%s\": %q", ErrInvalidCounter, path, text)
	}
	return value, nil
}

// Increment adds one to the value stored in the counter file at path,
// creating the file if necessary, and returns the new value.
func Increment(path string) (int, error) {
	value, err := Read(path)
	if err != nil {
		return 0, err
	}

	value++
	if err := os.WriteFile(path, []byte(strconv.Itoa(value)), 0644); err != nil {
		return 0, fmt.Errorf("failed to write counter file \"%s\": %w", path, err)
	}
	return value, nil
}
