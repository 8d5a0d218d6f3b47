package types

import (
	"io"
	"io/fs"
)

// FS provides filesystem operations that can be mocked for testing.
// The OS-backed and afero-backed implementations live in pkg/filesystem.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Streaming operations used by move and compress
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error

	// Lstat does not follow symlinks. Implementations without symlink
	// support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}

// Classifier populates the optional MIME category of a FileRecord. MIME
// detection is an external collaborator; the pipeline works without one.
type Classifier interface {
	Classify(path string) (string, error)
}

// ActivityRecorder receives structured audit events from the pipeline.
// Consumers subscribe explicitly; the pipeline never blocks on a recorder.
type ActivityRecorder interface {
	// RecordScan is called after a scan completes
	RecordScan(folder string, filesFound int, totalBytes uint64)

	// RecordBatch is called with the terminal summary of a batch
	RecordBatch(folder string, op OperationKind, summary BatchSummary)

	// RecordError is called for scan- or batch-level failures
	RecordError(details string)
}

// NoopRecorder is an ActivityRecorder that discards everything.
type NoopRecorder struct{}

func (NoopRecorder) RecordScan(string, int, uint64)                  {}
func (NoopRecorder) RecordBatch(string, OperationKind, BatchSummary) {}
func (NoopRecorder) RecordError(string)                             {}
