package uploadlog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrSourceBusy is returned when another process is already uploading the
// same source file.
var ErrSourceBusy = errors.New("uploadlog: source file is already being uploaded")

// SourceLock is an exclusive advisory lock on one upload source.
type SourceLock struct {
	lock *flock.Flock
}

// LockSource takes a non-blocking exclusive lock for sourcePath. Lock files
// live in dir, named after a hash of the absolute source path so the source
// itself is never opened for writing.
func LockSource(dir, sourcePath string) (*SourceLock, error) {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("uploadlog: resolve source path: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploadlog: create lock dir: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	lockPath := filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock")

	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("uploadlog: acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceBusy, abs)
	}
	return &SourceLock{lock: fl}, nil
}

// Unlock removes the lock file and releases the lock. It is safe to call on a
// nil lock.
func (l *SourceLock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	// Removed while still held, so no other process can own the old path.
	removeErr := os.Remove(l.lock.Path())
	if errors.Is(removeErr, os.ErrNotExist) {
		removeErr = nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("uploadlog: release lock: %w", err)
	}
	if removeErr != nil {
		return fmt.Errorf("uploadlog: remove lock file: %w", removeErr)
	}
	return nil
}
