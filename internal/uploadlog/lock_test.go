package uploadlog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tcloud/internal/uploadlog"
)

func TestLockSourceIsExclusive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "locks")
	source := filepath.Join(t.TempDir(), "clip.mov")

	first, err := uploadlog.LockSource(dir, source)
	if err != nil {
		t.Fatalf("first LockSource: %v", err)
	}

	if _, err := uploadlog.LockSource(dir, source); !errors.Is(err, uploadlog.ErrSourceBusy) {
		t.Fatalf("expected ErrSourceBusy, got %v", err)
	}

	other, err := uploadlog.LockSource(dir, filepath.Join(filepath.Dir(source), "other.mov"))
	if err != nil {
		t.Fatalf("lock for different source: %v", err)
	}
	_ = other.Unlock()

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	again, err := uploadlog.LockSource(dir, source)
	if err != nil {
		t.Fatalf("relock after unlock: %v", err)
	}
	_ = again.Unlock()
}

func TestUnlockRemovesLockFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "locks")
	source := filepath.Join(t.TempDir(), "clip.mov")

	lock, err := uploadlog.LockSource(dir, source)
	if err != nil {
		t.Fatalf("LockSource: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one lock file while held, got %d (%v)", len(entries), err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	entries, err = os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read lock dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected lock dir to be empty after unlock, got %d entries", len(entries))
	}
}

func TestNilSourceLockUnlock(t *testing.T) {
	var lock *uploadlog.SourceLock
	if err := lock.Unlock(); err != nil {
		t.Fatalf("nil Unlock: %v", err)
	}
}
