// Package dupes groups duplicate files by (name, size, content hash).
// It is a standalone collaborator; the cleanup pipeline does not depend
// on it.
package dupes

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/filesystem"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/types"
)

// Key identifies a duplicate group.
type Key struct {
	Name string
	Size uint64
	Hash string
}

// Finder locates duplicate files under a folder.
type Finder struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewFinder creates a Finder; a nil fs means the OS filesystem.
func NewFinder(fs types.FS) *Finder {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Finder{fs: fs, logger: logging.GetLogger("dupes")}
}

// Find walks root and returns only groups with at least two members.
// Unreadable files are skipped, matching the scanner's contract.
func (f *Finder) Find(ctx context.Context, root string) (map[Key][]string, error) {
	groups := make(map[Key][]string)
	if err := f.walk(ctx, root, groups); err != nil {
		return nil, err
	}

	for key, paths := range groups {
		if len(paths) < 2 {
			delete(groups, key)
		}
	}
	return groups, nil
}

func (f *Finder) walk(ctx context.Context, dir string, groups map[Key][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		f.logger.Debug().Err(err).Str("dir", dir).Msg("Skipping unreadable directory")
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := f.walk(ctx, path, groups); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		hash, err := f.hash(path)
		if err != nil {
			continue
		}

		key := Key{Name: entry.Name(), Size: uint64(info.Size()), Hash: hash}
		groups[key] = append(groups[key], path)
	}
	return nil
}

func (f *Finder) hash(path string) (string, error) {
	r, err := f.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Close() }()

	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
