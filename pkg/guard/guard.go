// Package guard is the policy layer consulted before any destructive
// action. It re-checks the file on disk at call time rather than trusting
// possibly-stale scan metadata.
package guard

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/filesystem"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/types"
)

// MaxFileSize is the safety ceiling for destructive operations. Files over
// it are rejected outright; this is not a rule-engine size filter.
const MaxFileSize = 100 * 1024 * 1024

// protectedExtensions are never deleted regardless of what the rules say.
var protectedExtensions = map[string]bool{
	".exe": true, ".dll": true, ".sys": true, ".bat": true,
	".cmd": true, ".ps1": true, ".sh": true, ".py": true,
	".js": true, ".php": true, ".html": true, ".xml": true,
}

// Guard rejects operations on symlinks, protected paths, unsafe extensions
// and oversized files.
type Guard struct {
	fs      types.FS
	home    string
	maxSize uint64
	logger  zerolog.Logger
}

// Options configures a Guard.
type Options struct {
	// FS defaults to the OS filesystem
	FS types.FS

	// Home overrides the protected home directory, mainly for tests.
	// Defaults to the current user's home directory.
	Home string

	// MaxFileSize overrides the size ceiling in bytes. Zero means the
	// default of 100 MiB.
	MaxFileSize uint64
}

// New creates a Guard
func New(opts Options) *Guard {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	home := opts.Home
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	maxSize := opts.MaxFileSize
	if maxSize == 0 {
		maxSize = MaxFileSize
	}
	return &Guard{
		fs:      fs,
		home:    home,
		maxSize: maxSize,
		logger:  logging.GetLogger("guard"),
	}
}

// CheckDelete decides whether rec may be destructively operated on. The
// checks run in a fixed order and short-circuit on the first failure:
// existence, symlink, home directory, protected extension, size ceiling.
//
// The stat is fresh: time may have passed since the scan and the record's
// fields may no longer reflect the file on disk.
func (g *Guard) CheckDelete(rec types.FileRecord) (bool, string) {
	info, err := g.fs.Lstat(rec.Path)
	if err != nil {
		return false, "File does not exist"
	}

	if info.Mode()&iofs.ModeSymlink != 0 {
		return false, "Cannot delete symbolic links"
	}

	if g.resolves(rec.Path) == filepath.Clean(g.home) {
		return false, "Cannot delete home directory"
	}

	ext := strings.ToLower(filepath.Ext(rec.Path))
	if protectedExtensions[ext] {
		return false, fmt.Sprintf("Unsafe extension: %s", ext)
	}

	if size := uint64(info.Size()); size > g.maxSize {
		return false, fmt.Sprintf("Large file detected (%.1fMB)", float64(size)/1024/1024)
	}

	return true, ""
}

// resolves returns the cleaned absolute form of path, following symlinks
// where the filesystem supports it.
func (g *Guard) resolves(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
