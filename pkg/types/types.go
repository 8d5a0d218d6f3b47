package types

import (
	"time"
)

// FileRecord is an immutable snapshot of one filesystem entry taken at scan
// time. Records are produced by the scanner, passed by value downstream, and
// discarded once the batch they belong to completes.
type FileRecord struct {
	// Path is the absolute path to the file
	Path string `json:"path"`

	// Name is the base name of the file
	Name string `json:"name"`

	// Size is the file size in bytes at scan time
	Size uint64 `json:"size"`

	// Modified is the last-modification timestamp at scan time
	Modified time.Time `json:"modified"`

	// Extension is the lowercase extension including the leading dot,
	// or empty when the file has none
	Extension string `json:"extension"`

	// MimeType is optionally populated by an external classifier
	MimeType string `json:"mime_type,omitempty"`
}

// Category groups files by what they are, for category-delete rules and
// display grouping.
type Category string

const (
	CategoryImages    Category = "images"
	CategoryDocuments Category = "documents"
	CategoryVideos    Category = "videos"
	CategoryAudio     Category = "audio"
	CategoryArchives  Category = "archives"
	CategoryTemporary Category = "temporary"
	CategoryLogs      Category = "logs"
	CategoryOther     Category = "other"
)

// OperationKind identifies what a batch does to each file.
type OperationKind string

const (
	OperationDelete   OperationKind = "delete"
	OperationMove     OperationKind = "move"
	OperationCompress OperationKind = "compress"
)

// Valid reports whether k is one of the known operation kinds.
func (k OperationKind) Valid() bool {
	switch k {
	case OperationDelete, OperationMove, OperationCompress:
		return true
	}
	return false
}

// EvaluationResult is the output of scoring one FileRecord against a rule
// configuration.
type EvaluationResult struct {
	// Decision is true when the file should be acted upon (score >= 2)
	Decision bool `json:"decision"`

	// Score is the accumulated weight of all matching rules
	Score int `json:"score"`

	// Reasons lists, in rule-evaluation order, why each rule fired
	Reasons []string `json:"reasons"`
}

// FileOperationOutcome is the result of executing one operation on one file.
type FileOperationOutcome struct {
	// File is the base name of the file
	File string `json:"file"`

	// Path is the absolute path the operation was attempted on
	Path string `json:"path"`

	// Operation is the kind of operation that was attempted
	Operation OperationKind `json:"operation"`

	// Success is true when the operation completed
	Success bool `json:"success"`

	// Skipped is true when the operation was not attempted (dry run)
	Skipped bool `json:"skipped"`

	// Bytes is the number of bytes affected by a successful operation
	Bytes uint64 `json:"bytes"`

	// Error describes why the operation failed, empty on success
	Error string `json:"error,omitempty"`

	// Duration is how long the operation took
	Duration time.Duration `json:"duration"`
}

// BatchSummary aggregates all outcomes of one batch. The counts are pure
// sums and therefore deterministic regardless of completion order.
type BatchSummary struct {
	// TotalFiles is the number of records submitted to the batch
	TotalFiles int `json:"total_files"`

	// Succeeded, Failed and Skipped count per-file outcomes
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`

	// BytesAffected is the sum of sizes of successfully processed files
	BytesAffected uint64 `json:"bytes_affected"`

	// Errors lists the error descriptions of failed outcomes in the
	// order their completions were aggregated
	Errors []string `json:"errors,omitempty"`

	// Duration is the wall-clock time of the whole batch
	Duration time.Duration `json:"duration"`
}

// ProgressEvent reports batch progress after an individual completion.
type ProgressEvent struct {
	// Percent is floor(100 * completed / total)
	Percent int `json:"percent"`

	// Status names the file whose completion produced this event
	Status string `json:"status"`
}
