package scanner

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/filesystem"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/types"
)

// Scanner walks a directory tree and produces FileRecord snapshots. It
// holds no judgement logic; filtering and scoring happen downstream.
type Scanner struct {
	fs         types.FS
	classifier types.Classifier
	logger     zerolog.Logger
	totalSize  atomic.Uint64
}

// Options configures a Scanner.
type Options struct {
	// FS is the filesystem to walk. Defaults to the OS filesystem.
	FS types.FS

	// Classifier optionally populates each record's MIME category.
	// A classifier failure leaves the field empty; it never skips a file.
	Classifier types.Classifier
}

// New creates a new Scanner
func New(opts Options) *Scanner {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Scanner{
		fs:         fs,
		classifier: opts.Classifier,
		logger:     logging.GetLogger("scanner"),
	}
}

// Scan validates root and returns a lazy, one-shot stream of records for
// every regular file under it, in directory-traversal order. Files whose
// metadata cannot be read are silently skipped. The stream is closed when
// the walk finishes or ctx is cancelled; restarting requires a new Scan.
//
// Scan fails immediately when root does not exist or is not a directory.
func (s *Scanner) Scan(ctx context.Context, root string) (<-chan types.FileRecord, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScanRootMissing, "cannot scan %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrScanRootInvalid, "%s is not a directory", root)
	}

	s.totalSize.Store(0)
	out := make(chan types.FileRecord)

	go func() {
		defer close(out)
		done := logging.LogOperationStart(s.logger, "scan")
		defer done()

		s.walk(ctx, root, out)
	}()

	return out, nil
}

// ScanAll collects the stream of a Scan into a slice.
func (s *Scanner) ScanAll(ctx context.Context, root string) ([]types.FileRecord, error) {
	stream, err := s.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	var records []types.FileRecord
	for rec := range stream {
		records = append(records, rec)
	}
	return records, nil
}

// TotalSize returns the accumulated size of all successfully read files.
// It is valid once the stream of the corresponding Scan has been drained.
func (s *Scanner) TotalSize() uint64 {
	return s.totalSize.Load()
}

func (s *Scanner) walk(ctx context.Context, dir string, out chan<- types.FileRecord) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		// Unreadable directories contribute nothing; not a scan error
		s.logger.Debug().Err(err).Str("dir", dir).Msg("Skipping unreadable directory")
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			s.walk(ctx, path, out)
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed mid-walk or permission denied: silent skip
			s.logger.Debug().Err(err).Str("path", path).Msg("Skipping unreadable file")
			continue
		}

		rec := types.FileRecord{
			Path:      path,
			Name:      entry.Name(),
			Size:      uint64(info.Size()),
			Modified:  info.ModTime(),
			Extension: strings.ToLower(filepath.Ext(entry.Name())),
		}

		if s.classifier != nil {
			if mime, err := s.classifier.Classify(path); err == nil {
				rec.MimeType = mime
			}
		}

		select {
		case out <- rec:
			s.totalSize.Add(rec.Size)
		case <-ctx.Done():
			return
		}
	}
}
