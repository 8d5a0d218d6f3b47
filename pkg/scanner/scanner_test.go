// Test Type: Unit Test
// Description: Tests for the scanner package - directory walking and metadata capture

package scanner_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/scanner"
	"github.com/arthur-debert/scour/pkg/testutil"
	"github.com/arthur-debert/scour/pkg/types"
)

func TestScan(t *testing.T) {
	t.Run("captures_metadata_for_every_regular_file", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFile(t, root, "report.PDF", "12345")
		testutil.WriteFile(t, root, "sub/deep/notes.txt", "hello world")

		s := scanner.New(scanner.Options{})
		records, err := s.ScanAll(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, records, 2)

		byName := indexByName(records)
		pdf := byName["report.PDF"]
		assert.Equal(t, uint64(5), pdf.Size)
		assert.Equal(t, ".pdf", pdf.Extension, "extension should be lowercased")
		assert.WithinDuration(t, time.Now(), pdf.Modified, time.Minute)

		txt := byName["notes.txt"]
		assert.Equal(t, uint64(11), txt.Size)
		assert.Contains(t, txt.Path, "sub")
	})

	t.Run("total_size_sums_scanned_files", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFileAged(t, root, "a.bin", 100, 0)
		testutil.WriteFileAged(t, root, "b.bin", 250, 0)

		s := scanner.New(scanner.Options{})
		_, err := s.ScanAll(context.Background(), root)
		require.NoError(t, err)

		assert.Equal(t, uint64(350), s.TotalSize())
	})

	t.Run("missing_root_fails_before_streaming", func(t *testing.T) {
		s := scanner.New(scanner.Options{})
		stream, err := s.Scan(context.Background(), "/no/such/dir")

		require.Error(t, err)
		assert.Nil(t, stream)
		assert.True(t, errors.IsErrorCode(err, errors.ErrScanRootMissing))
	})

	t.Run("file_root_is_rejected", func(t *testing.T) {
		root := t.TempDir()
		path := testutil.WriteFile(t, root, "plain.txt", "x")

		s := scanner.New(scanner.Options{})
		_, err := s.Scan(context.Background(), path)

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrScanRootInvalid))
	})

	t.Run("empty_directory_yields_no_records", func(t *testing.T) {
		root := t.TempDir()

		s := scanner.New(scanner.Options{})
		records, err := s.ScanAll(context.Background(), root)
		require.NoError(t, err)

		assert.Empty(t, records)
		assert.Zero(t, s.TotalSize())
	})

	t.Run("rescanning_resets_total_size", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFileAged(t, root, "a.bin", 64, 0)

		s := scanner.New(scanner.Options{})
		for i := 0; i < 2; i++ {
			_, err := s.ScanAll(context.Background(), root)
			require.NoError(t, err)
			assert.Equal(t, uint64(64), s.TotalSize())
		}
	})

	t.Run("cancellation_stops_the_stream", func(t *testing.T) {
		root := t.TempDir()
		for _, name := range []string{"a", "b", "c", "d"} {
			testutil.WriteFile(t, root, name, "x")
		}

		ctx, cancel := context.WithCancel(context.Background())
		s := scanner.New(scanner.Options{})
		stream, err := s.Scan(ctx, root)
		require.NoError(t, err)

		// Read one record, then cancel; the stream must close on its own.
		<-stream
		cancel()
		for range stream {
		}
	})
}

func TestScanClassifier(t *testing.T) {
	t.Run("classifier_populates_mime_type", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFile(t, root, "page.html", "<html></html>")

		s := scanner.New(scanner.Options{Classifier: staticClassifier("text/html")})
		records, err := s.ScanAll(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, "text/html", records[0].MimeType)
	})

	t.Run("classifier_failure_leaves_field_empty", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFile(t, root, "blob", "data")

		s := scanner.New(scanner.Options{Classifier: failingClassifier{}})
		records, err := s.ScanAll(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Empty(t, records[0].MimeType)
	})
}

func indexByName(records []types.FileRecord) map[string]types.FileRecord {
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	byName := make(map[string]types.FileRecord, len(records))
	for _, rec := range records {
		byName[rec.Name] = rec
	}
	return byName
}

type staticClassifier string

func (c staticClassifier) Classify(string) (string, error) { return string(c), nil }

type failingClassifier struct{}

func (failingClassifier) Classify(string) (string, error) {
	return "", errors.New(errors.ErrInternal, "no detector")
}
