// Package testutil provides shared test infrastructure for the harness.
// It deliberately avoids importing sim so that sim's own in-package
// tests can use it without an import cycle.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Key builds a deterministic 32-byte publisher key for tests. Keys built
// from increasing i sort in the same order as i.
func Key(i uint64) [32]byte {
	var k [32]byte
	binary.BigEndian.PutUint64(k[24:], i)
	return k
}

// WriteFile drops contents into a temp file and returns its path. The
// file lives in a per-test temp dir and is removed automatically.
func WriteFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
