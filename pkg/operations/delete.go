package operations

import (
	"context"

	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/types"
)

// Delete removes the file at path. Safety checks are the guard's job and
// must have happened before this is called.
func Delete(ctx context.Context, fs types.FS, path string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrOpTimeout, "delete aborted")
	}
	if err := fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrOpFailed, "failed to delete %s", path)
	}
	return nil
}
