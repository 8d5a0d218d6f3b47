// Test Type: Unit Test
// Description: Tests for the file-backed activity log

package activity_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scour/pkg/activity"
	"github.com/arthur-debert/scour/pkg/filesystem"
	"github.com/arthur-debert/scour/pkg/types"
)

func newMemLog(t *testing.T) *activity.Log {
	t.Helper()
	return activity.NewLog(activity.Options{
		FS:   filesystem.NewMemory(),
		Path: "state/activity.json",
	})
}

func TestLog(t *testing.T) {
	t.Run("scan_events_are_recorded", func(t *testing.T) {
		log := newMemLog(t)
		log.RecordScan("/data/downloads", 42, 1024)

		entries := log.List(activity.Filter{})
		require.Len(t, entries, 1)
		assert.Equal(t, activity.ActionScan, entries[0].Action)
		assert.Equal(t, "Scanned: /data/downloads", entries[0].Details)
		assert.Equal(t, 42, entries[0].Files)
		assert.Equal(t, "1024 bytes", entries[0].Status)
	})

	t.Run("clean_batch_records_success", func(t *testing.T) {
		log := newMemLog(t)
		log.RecordBatch("/data", types.OperationDelete, types.BatchSummary{
			TotalFiles: 3, Succeeded: 3,
		})

		entries := log.List(activity.Filter{})
		require.Len(t, entries, 1)
		assert.Equal(t, activity.ActionDeletion, entries[0].Action)
		assert.Equal(t, "Success", entries[0].Status)
		assert.Equal(t, 3, entries[0].Files)
	})

	t.Run("failed_files_mark_partial_success", func(t *testing.T) {
		log := newMemLog(t)
		log.RecordBatch("/data", types.OperationDelete, types.BatchSummary{
			TotalFiles: 5, Succeeded: 3, Failed: 2,
		})

		entries := log.List(activity.Filter{})
		require.Len(t, entries, 1)
		assert.Equal(t, "Partial Success (2 errors)", entries[0].Status)
	})

	t.Run("operation_kind_maps_to_action", func(t *testing.T) {
		log := newMemLog(t)
		log.RecordBatch("/a", types.OperationMove, types.BatchSummary{})
		log.RecordBatch("/b", types.OperationCompress, types.BatchSummary{})

		assert.Len(t, log.List(activity.Filter{Action: activity.ActionMove}), 1)
		assert.Len(t, log.List(activity.Filter{Action: activity.ActionCompress}), 1)
	})

	t.Run("errors_are_marked_failed", func(t *testing.T) {
		log := newMemLog(t)
		log.RecordError("cannot scan /nope")

		entries := log.List(activity.Filter{Action: activity.ActionError})
		require.Len(t, entries, 1)
		assert.Equal(t, "Failed", entries[0].Status)
		assert.Equal(t, "cannot scan /nope", entries[0].Details)
	})

	t.Run("list_is_newest_first_with_limit", func(t *testing.T) {
		log := newMemLog(t)
		for i := 0; i < 5; i++ {
			log.RecordError(fmt.Sprintf("error %d", i))
		}

		entries := log.List(activity.Filter{Limit: 2})
		require.Len(t, entries, 2)
		assert.Equal(t, "error 4", entries[0].Details)
		assert.Equal(t, "error 3", entries[1].Details)
	})

	t.Run("entries_survive_reload", func(t *testing.T) {
		fs := filesystem.NewMemory()
		path := filepath.Join("state", "activity.json")

		log := activity.NewLog(activity.Options{FS: fs, Path: path})
		log.RecordScan("/data", 1, 10)

		reloaded := activity.NewLog(activity.Options{FS: fs, Path: path})
		entries := reloaded.List(activity.Filter{})
		require.Len(t, entries, 1)
		assert.Equal(t, activity.ActionScan, entries[0].Action)
	})

	t.Run("clear_removes_entries_and_file", func(t *testing.T) {
		fs := filesystem.NewMemory()
		path := "state/activity.json"

		log := activity.NewLog(activity.Options{FS: fs, Path: path})
		log.RecordScan("/data", 1, 10)
		log.Clear()

		assert.Empty(t, log.List(activity.Filter{}))
		_, err := fs.ReadFile(path)
		assert.Error(t, err)

		reloaded := activity.NewLog(activity.Options{FS: fs, Path: path})
		assert.Empty(t, reloaded.List(activity.Filter{}))
	})

	t.Run("corrupt_log_file_starts_fresh", func(t *testing.T) {
		fs := filesystem.NewMemory()
		path := "state/activity.json"
		require.NoError(t, fs.MkdirAll("state", 0755))
		require.NoError(t, fs.WriteFile(path, []byte("not json"), 0644))

		log := activity.NewLog(activity.Options{FS: fs, Path: path})
		assert.Empty(t, log.List(activity.Filter{}))
	})
}
