package analyzer

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/types"
)

// cachedAnalysis is one persisted report keyed by folder path.
type cachedAnalysis struct {
	Stats     *Stats    `json:"stats"`
	Timestamp time.Time `json:"timestamp"`
}

// Cache persists analysis reports per folder so repeated dashboard views
// do not re-walk large trees.
type Cache struct {
	fs   types.FS
	path string
}

// NewCache creates a cache at path, or under the XDG cache dir when empty.
func NewCache(fs types.FS, path string) *Cache {
	if path == "" {
		path = filepath.Join(xdg.CacheHome, "scour", "disk_analysis.json")
	}
	return &Cache{fs: fs, path: path}
}

// Save stores a report for folder, merging with existing entries.
func (c *Cache) Save(folder string, stats *Stats) error {
	entries := map[string]cachedAnalysis{}
	if data, err := c.fs.ReadFile(c.path); err == nil {
		// A corrupt cache is replaced wholesale
		_ = json.Unmarshal(data, &entries)
	}

	entries[folder] = cachedAnalysis{Stats: stats, Timestamp: time.Now()}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode analysis cache")
	}
	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create cache directory")
	}
	return c.fs.WriteFile(c.path, data, 0644)
}

// Load returns the cached report for folder and when it was taken, or
// found=false when none exists.
func (c *Cache) Load(folder string) (*Stats, time.Time, bool) {
	data, err := c.fs.ReadFile(c.path)
	if err != nil {
		return nil, time.Time{}, false
	}
	entries := map[string]cachedAnalysis{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, time.Time{}, false
	}
	entry, ok := entries[folder]
	if !ok {
		return nil, time.Time{}, false
	}
	return entry.Stats, entry.Timestamp, true
}
