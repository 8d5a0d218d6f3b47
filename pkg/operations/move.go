package operations

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/types"
)

// CollisionPolicy decides what happens when the move destination already
// exists. Silent overwrite is never an option.
type CollisionPolicy string

const (
	// CollisionFail rejects the move with an OP_CONFLICT error
	CollisionFail CollisionPolicy = "fail"

	// CollisionRename derives a free "name (N).ext" destination
	CollisionRename CollisionPolicy = "rename"
)

// renameAttempts bounds the search for a free destination name.
const renameAttempts = 1000

// Move relocates rec into targetDir, creating intermediate directories as
// needed. The destination file name follows the source; an existing file
// at the destination is handled per policy.
//
// Returns the final destination path.
func Move(ctx context.Context, fs types.FS, rec types.FileRecord, targetDir string, policy CollisionPolicy) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.ErrOpTimeout, "move aborted")
	}

	if err := fs.MkdirAll(targetDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrOpFailed, "failed to create %s", targetDir)
	}

	dest := filepath.Join(targetDir, rec.Name)
	if _, err := fs.Lstat(dest); err == nil {
		switch policy {
		case CollisionRename:
			renamed, err := freeDestination(fs, targetDir, rec.Name)
			if err != nil {
				return "", err
			}
			dest = renamed
		default:
			return "", errors.Newf(errors.ErrOpConflict, "destination already exists: %s", dest)
		}
	}

	if err := fs.Rename(rec.Path, dest); err != nil {
		// Rename fails across devices; fall back to copy + remove
		if copyErr := copyFile(ctx, fs, rec.Path, dest); copyErr != nil {
			return "", errors.Wrapf(copyErr, errors.ErrOpFailed, "failed to move %s", rec.Path)
		}
		if err := fs.Remove(rec.Path); err != nil {
			return "", errors.Wrapf(err, errors.ErrOpFailed, "failed to remove %s after copy", rec.Path)
		}
	}

	return dest, nil
}

// freeDestination finds the first "name (N).ext" not present in targetDir
func freeDestination(fs types.FS, targetDir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 1; n <= renameAttempts; n++ {
		candidate := filepath.Join(targetDir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if _, err := fs.Lstat(candidate); err != nil {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrOpConflict, "no free destination name for %s in %s", name, targetDir)
}

// copyBufferSize is the chunk size for the context-aware copy loop.
const copyBufferSize = 32 * 1024

func copyFile(ctx context.Context, fs types.FS, src, dest string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fs.Create(dest)
	if err != nil {
		return err
	}

	if err := copyContext(ctx, out, in); err != nil {
		_ = out.Close()
		_ = fs.Remove(dest)
		return err
	}
	return out.Close()
}

// copyContext copies in chunks, checking for cancellation between chunks
func copyContext(ctx context.Context, dst io.Writer, src io.Reader) error {
	buf := make([]byte, copyBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
