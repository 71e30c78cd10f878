// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories first.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTimestamp writes a well-formed freshness record at path.
func WriteTimestamp(t testing.TB, path string, timestamp int64) {
	t.Helper()

	WriteFile(t, path, fmt.Sprintf("lastUpdateTime=%d\n", timestamp))
}

// WriteStatus writes a daemon status record with both keys present.
func WriteStatus(t testing.TB, path string, success bool, timestamp int64) {
	t.Helper()

	WriteFile(t, path, fmt.Sprintf("lastUpdateSuccess=%t\nlastUpdateTime=%d\n", success, timestamp))
}
