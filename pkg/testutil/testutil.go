// Package testutil provides shared helpers for writing filesystem
// fixtures in tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scour/pkg/types"
)

// WriteFile creates a file under root with the given content, creating
// parent directories as needed, and returns its absolute path.
func WriteFile(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteFileAged creates a file of size bytes whose modification time lies
// age in the past, and returns its absolute path.
func WriteFileAged(t *testing.T, root, name string, size int, age time.Duration) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

// Record builds a FileRecord from a file on disk.
func Record(t *testing.T, path string) types.FileRecord {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return types.FileRecord{
		Path:      path,
		Name:      filepath.Base(path),
		Size:      uint64(info.Size()),
		Modified:  info.ModTime(),
		Extension: strings.ToLower(filepath.Ext(path)),
	}
}
