package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// PatternByte is the byte WriteFile stores at offset.
func PatternByte(offset int64) byte {
	return byte(offset % 251)
}

// Pattern returns the n bytes WriteFile stores starting at offset.
func Pattern(offset int64, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = PatternByte(offset + int64(i))
	}
	return out
}

// WriteFile creates a media stand-in of size bytes at path. The content is a
// position-dependent pattern so tests can check which range a chunk carried.
// A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 64 * 1024
	var written int64
	for written < size {
		n := int64(chunkSize)
		if remaining := size - written; remaining < n {
			n = remaining
		}
		if _, err := f.Write(Pattern(written, int(n))); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		written += n
	}
}
