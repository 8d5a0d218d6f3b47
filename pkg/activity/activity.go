// Package activity provides the file-backed audit log. It implements
// types.ActivityRecorder so the pipeline can forward scan and batch events
// without knowing how they are persisted.
package activity

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/filesystem"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/types"
)

// maxEntries caps the log so the file cannot grow without bound.
const maxEntries = 1000

// Action classifies an activity entry.
type Action string

const (
	ActionScan     Action = "Scan"
	ActionDeletion Action = "Deletion"
	ActionMove     Action = "Move"
	ActionCompress Action = "Compress"
	ActionError    Action = "Error"
)

// Entry is one audit record.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Details   string    `json:"details"`
	Files     int       `json:"files"`
	Status    string    `json:"status"`
}

// Filter narrows List results.
type Filter struct {
	// Action keeps only entries of one action type; empty keeps all
	Action Action

	// Limit caps the number of returned entries; zero means no cap
	Limit int
}

// Log is a capped, file-backed activity log. Safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	fs      types.FS
	path    string
	entries []Entry
	logger  zerolog.Logger
}

// Options configures a Log.
type Options struct {
	// FS defaults to the OS filesystem
	FS types.FS

	// Path overrides the log location. Defaults to the XDG state dir.
	Path string
}

// NewLog opens (or creates) the activity log, loading existing entries.
func NewLog(opts Options) *Log {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	path := opts.Path
	if path == "" {
		path = filepath.Join(xdg.StateHome, "scour", "activity.json")
	}

	l := &Log{
		fs:     fs,
		path:   path,
		logger: logging.GetLogger("activity"),
	}
	l.load()
	return l
}

// RecordScan implements types.ActivityRecorder
func (l *Log) RecordScan(folder string, filesFound int, totalBytes uint64) {
	l.append(Entry{
		Timestamp: time.Now(),
		Action:    ActionScan,
		Details:   fmt.Sprintf("Scanned: %s", folder),
		Files:     filesFound,
		Status:    fmt.Sprintf("%d bytes", totalBytes),
	})
}

// RecordBatch implements types.ActivityRecorder
func (l *Log) RecordBatch(folder string, op types.OperationKind, summary types.BatchSummary) {
	status := "Success"
	if summary.Failed > 0 {
		status = fmt.Sprintf("Partial Success (%d errors)", summary.Failed)
	}
	l.append(Entry{
		Timestamp: time.Now(),
		Action:    actionFor(op),
		Details:   fmt.Sprintf("Cleaned: %s", folder),
		Files:     summary.Succeeded,
		Status:    status,
	})
}

// RecordError implements types.ActivityRecorder
func (l *Log) RecordError(details string) {
	l.append(Entry{
		Timestamp: time.Now(),
		Action:    ActionError,
		Details:   details,
		Status:    "Failed",
	})
}

// List returns entries newest-first, narrowed by the filter.
func (l *Log) List(filter Filter) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

// Clear discards all entries and removes the backing file.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	if err := l.fs.Remove(l.path); err != nil {
		l.logger.Debug().Err(err).Msg("No activity file to remove")
	}
}

func actionFor(op types.OperationKind) Action {
	switch op {
	case types.OperationMove:
		return ActionMove
	case types.OperationCompress:
		return ActionCompress
	default:
		return ActionDeletion
	}
}

func (l *Log) append(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}
	l.save()
}

func (l *Log) load() {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		return
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		l.logger.Warn().Err(err).Str("path", l.path).Msg("Discarding unreadable activity log")
		return
	}
	l.entries = entries
}

// save persists under the held lock
func (l *Log) save() {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		l.logger.Error().Err(err).Msg("Failed to encode activity log")
		return
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := l.fs.MkdirAll(dir, 0755); err != nil {
			l.logger.Error().Err(err).Str("dir", dir).Msg("Failed to create activity log directory")
			return
		}
	}
	if err := l.fs.WriteFile(l.path, data, 0644); err != nil {
		l.logger.Error().Err(err).Str("path", l.path).Msg("Failed to write activity log")
	}
}
