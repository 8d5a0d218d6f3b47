// Test Type: Unit Test
// Description: Tests for the safety guard consulted before destructive operations

package guard_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scour/pkg/guard"
	"github.com/arthur-debert/scour/pkg/testutil"
)

func TestCheckDelete(t *testing.T) {
	t.Run("regular_file_is_allowed", func(t *testing.T) {
		root := t.TempDir()
		path := testutil.WriteFile(t, root, "scratch.tmp", "x")

		g := guard.New(guard.Options{})
		ok, reason := g.CheckDelete(testutil.Record(t, path))

		assert.True(t, ok)
		assert.Empty(t, reason)
	})

	t.Run("missing_file_is_rejected", func(t *testing.T) {
		root := t.TempDir()
		path := testutil.WriteFile(t, root, "gone.tmp", "x")
		rec := testutil.Record(t, path)
		require.NoError(t, os.Remove(path))

		g := guard.New(guard.Options{})
		ok, reason := g.CheckDelete(rec)

		assert.False(t, ok)
		assert.Equal(t, "File does not exist", reason)
	})

	t.Run("symlink_is_rejected", func(t *testing.T) {
		root := t.TempDir()
		target := testutil.WriteFile(t, root, "target.txt", "x")
		link := filepath.Join(root, "link.txt")
		require.NoError(t, os.Symlink(target, link))

		rec := testutil.Record(t, target)
		rec.Path = link
		rec.Name = "link.txt"

		g := guard.New(guard.Options{})
		ok, reason := g.CheckDelete(rec)

		assert.False(t, ok)
		assert.Equal(t, "Cannot delete symbolic links", reason)
	})

	t.Run("home_directory_is_rejected", func(t *testing.T) {
		home := t.TempDir()

		g := guard.New(guard.Options{Home: home})
		ok, reason := g.CheckDelete(testutil.Record(t, home))

		assert.False(t, ok)
		assert.Equal(t, "Cannot delete home directory", reason)
	})

	t.Run("protected_extension_is_rejected", func(t *testing.T) {
		root := t.TempDir()
		path := testutil.WriteFile(t, root, "setup.py", "print('hi')")

		g := guard.New(guard.Options{})
		ok, reason := g.CheckDelete(testutil.Record(t, path))

		assert.False(t, ok)
		assert.Equal(t, "Unsafe extension: .py", reason)
	})

	t.Run("protected_extension_check_is_case_insensitive", func(t *testing.T) {
		root := t.TempDir()
		path := testutil.WriteFile(t, root, "RUN.SH", "echo hi")

		g := guard.New(guard.Options{})
		ok, reason := g.CheckDelete(testutil.Record(t, path))

		assert.False(t, ok)
		assert.Equal(t, "Unsafe extension: .sh", reason)
	})

	t.Run("oversized_file_is_rejected", func(t *testing.T) {
		root := t.TempDir()
		path := testutil.WriteFileAged(t, root, "blob.bin", 2048, 0)

		g := guard.New(guard.Options{MaxFileSize: 1024})
		ok, reason := g.CheckDelete(testutil.Record(t, path))

		assert.False(t, ok)
		assert.Equal(t, "Large file detected (0.0MB)", reason)
	})

	t.Run("stat_is_fresh_not_trusted_from_the_record", func(t *testing.T) {
		// The record claims a tiny size but the file grew past the ceiling
		// after the scan; the guard must reject based on current state.
		root := t.TempDir()
		path := testutil.WriteFileAged(t, root, "grew.bin", 16, 0)
		rec := testutil.Record(t, path)
		require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0644))

		g := guard.New(guard.Options{MaxFileSize: 1024})
		ok, _ := g.CheckDelete(rec)

		assert.False(t, ok)
	})
}
