// Package runlock keeps two runs from writing into the same destination at once.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/joe/organize-files/pkg/filesystem"
)

const keyHashLength = 16

// ErrRunInProgress means another run holds the lock for the destination.
var ErrRunInProgress = errors.New("another run is already organizing into this destination")

// Lock is an exclusive lock on one destination.
type Lock struct {
	flock *flock.Flock
}

// Acquire takes the lock for dest without waiting. dest is a local path or
// an sftp:// URL.
func Acquire(dest string) (*Lock, error) {
	return AcquireAt(PathFor(dest))
}

// AcquireAt takes the lock on the lock file at path without waiting.
func AcquireAt(path string) (*Lock, error) {
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}

	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrRunInProgress, path)
	}

	return &Lock{flock: lock}, nil
}

// PathFor returns the lock file for dest in the OS temp directory. Local
// paths are made absolute first so different spellings share a lock.
func PathFor(dest string) string {
	key := dest

	if !filesystem.IsRemoteLocation(dest) {
		if abs, err := filepath.Abs(dest); err == nil {
			key = abs
		}
	}

	sum := sha256.Sum256([]byte(key))

	return filepath.Join(os.TempDir(), "organize-files-"+hex.EncodeToString(sum[:])[:keyHashLength]+".lock")
}

// Path is the lock file path.
func (l *Lock) Path() string {
	return l.flock.Path()
}

// Release unlocks. The lock file is left in place.
func (l *Lock) Release() error {
	err := l.flock.Unlock()
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.flock.Path(), err)
	}

	return nil
}
