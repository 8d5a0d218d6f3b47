package operations

import (
	"context"

	"github.com/klauspost/compress/gzip"

	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/types"
)

// DefaultCompressionLevel matches gzip's default trade-off.
const DefaultCompressionLevel = 6

// CompressResult describes a completed compression.
type CompressResult struct {
	// CompressedPath is the suffixed archive next to the source
	CompressedPath string

	// CompressedSize is the archive size in bytes
	CompressedSize uint64

	// Ratio is (original - compressed) / original * 100
	Ratio float64
}

// Compress produces a gzip archive of rec at "<path>.gz". The source is
// retained unless keepSource is false.
func Compress(ctx context.Context, fs types.FS, rec types.FileRecord, level int, keepSource bool) (CompressResult, error) {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		level = DefaultCompressionLevel
	}

	dest := rec.Path + ".gz"

	in, err := fs.Open(rec.Path)
	if err != nil {
		return CompressResult{}, errors.Wrapf(err, errors.ErrOpFailed, "failed to open %s", rec.Path)
	}
	defer func() { _ = in.Close() }()

	out, err := fs.Create(dest)
	if err != nil {
		return CompressResult{}, errors.Wrapf(err, errors.ErrOpFailed, "failed to create %s", dest)
	}

	zw, err := gzip.NewWriterLevel(out, level)
	if err != nil {
		_ = out.Close()
		return CompressResult{}, errors.Wrap(err, errors.ErrOpFailed, "failed to initialize gzip writer")
	}
	zw.Name = rec.Name

	if err := copyContext(ctx, zw, in); err != nil {
		_ = zw.Close()
		_ = out.Close()
		_ = fs.Remove(dest)
		return CompressResult{}, errors.Wrapf(err, errors.ErrOpFailed, "failed to compress %s", rec.Path)
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		_ = fs.Remove(dest)
		return CompressResult{}, errors.Wrapf(err, errors.ErrOpFailed, "failed to finalize %s", dest)
	}
	if err := out.Close(); err != nil {
		return CompressResult{}, errors.Wrapf(err, errors.ErrOpFailed, "failed to close %s", dest)
	}

	info, err := fs.Stat(dest)
	if err != nil {
		return CompressResult{}, errors.Wrapf(err, errors.ErrOpFailed, "failed to stat %s", dest)
	}

	compressed := uint64(info.Size())
	var ratio float64
	if rec.Size > 0 {
		// Can go negative for incompressible input; reported as-is
		ratio = (float64(rec.Size) - float64(compressed)) / float64(rec.Size) * 100
	}

	if !keepSource {
		if err := fs.Remove(rec.Path); err != nil {
			return CompressResult{}, errors.Wrapf(err, errors.ErrOpFailed, "failed to remove source %s", rec.Path)
		}
	}

	return CompressResult{
		CompressedPath: dest,
		CompressedSize: compressed,
		Ratio:          ratio,
	}, nil
}
