// Package analyzer produces disk-usage statistics and cleanup
// recommendations for a folder. It is a read-only collaborator of the
// pipeline: nothing here mutates the filesystem.
package analyzer

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/filesystem"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/types"
)

// topN is how many largest/oldest files a report keeps.
const topN = 10

// Stats is the result of analyzing one folder.
type Stats struct {
	TotalSize   uint64 `json:"total_size"`
	FileCount   int    `json:"file_count"`
	FolderCount int    `json:"folder_count"`

	// ByExtension accumulates bytes per lowercase extension
	ByExtension map[string]uint64 `json:"by_extension"`

	// ByAge accumulates bytes into fixed age buckets
	ByAge map[string]uint64 `json:"by_age"`

	// BySize counts files into fixed size buckets
	BySize map[string]int `json:"by_size"`

	// Largest and Oldest are top-10 lists, sorted then truncated after
	// the full walk (traversal order itself is unsorted)
	Largest []types.FileRecord `json:"largest_files"`
	Oldest  []types.FileRecord `json:"oldest_files"`

	// DuplicateWaste is the redundant bytes held by duplicate copies.
	// Analyze does not fill it; callers that ran duplicate detection can
	// set it to unlock the deduplication recommendation.
	DuplicateWaste uint64 `json:"duplicate_waste,omitempty"`
}

// Age bucket labels, youngest to oldest.
const (
	AgeUnderDay   = "<1d"
	AgeUnderWeek  = "1d-7d"
	AgeUnderMonth = "1w-1m"
	AgeUnderHalf  = "1m-6m"
	AgeUnderYear  = "6m-1y"
	AgeOverYear   = ">1y"
)

// Size bucket labels.
const (
	SizeTiny   = "<1MB"
	SizeSmall  = "1MB-10MB"
	SizeMedium = "10MB-100MB"
	SizeLarge  = ">100MB"
)

// Analyzer walks folders and aggregates usage statistics.
type Analyzer struct {
	fs     types.FS
	logger zerolog.Logger
	now    func() time.Time
}

// Options configures an Analyzer.
type Options struct {
	// FS defaults to the OS filesystem
	FS types.FS
}

// New creates an Analyzer
func New(opts Options) *Analyzer {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Analyzer{
		fs:     fs,
		logger: logging.GetLogger("analyzer"),
		now:    time.Now,
	}
}

// Analyze walks root and returns aggregated statistics. Files whose
// metadata cannot be read are skipped, same as the scanner's contract.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*Stats, error) {
	done := logging.LogOperationStart(a.logger, "analyze")
	defer done()

	stats := &Stats{
		ByExtension: make(map[string]uint64),
		ByAge: map[string]uint64{
			AgeUnderDay: 0, AgeUnderWeek: 0, AgeUnderMonth: 0,
			AgeUnderHalf: 0, AgeUnderYear: 0, AgeOverYear: 0,
		},
		BySize: map[string]int{
			SizeTiny: 0, SizeSmall: 0, SizeMedium: 0, SizeLarge: 0,
		},
	}

	var all []types.FileRecord
	if err := a.walk(ctx, root, stats, &all); err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Size > all[j].Size })
	stats.Largest = truncate(all, topN)

	sorted := make([]types.FileRecord, len(all))
	copy(sorted, all)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Modified.Before(sorted[j].Modified) })
	stats.Oldest = truncate(sorted, topN)

	a.logger.Debug().
		Int("files", stats.FileCount).
		Int("folders", stats.FolderCount).
		Uint64("bytes", stats.TotalSize).
		Msg("Analysis complete")

	return stats, nil
}

func (a *Analyzer) walk(ctx context.Context, dir string, stats *Stats, all *[]types.FileRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := a.fs.ReadDir(dir)
	if err != nil {
		a.logger.Debug().Err(err).Str("dir", dir).Msg("Skipping unreadable directory")
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			stats.FolderCount++
			if err := a.walk(ctx, path, stats, all); err != nil {
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

		size := uint64(info.Size())
		stats.TotalSize += size
		stats.FileCount++

		ext := filepath.Ext(entry.Name())
		if ext != "" {
			stats.ByExtension[ext] += size
		}

		stats.ByAge[a.ageBucket(info.ModTime())] += size
		stats.BySize[sizeBucket(size)]++

		*all = append(*all, types.FileRecord{
			Path:     path,
			Name:     entry.Name(),
			Size:     size,
			Modified: info.ModTime(),
		})
	}
	return nil
}

func (a *Analyzer) ageBucket(modified time.Time) string {
	days := int(a.now().Sub(modified).Hours() / 24)
	switch {
	case days < 1:
		return AgeUnderDay
	case days < 7:
		return AgeUnderWeek
	case days < 30:
		return AgeUnderMonth
	case days < 180:
		return AgeUnderHalf
	case days < 365:
		return AgeUnderYear
	default:
		return AgeOverYear
	}
}

func sizeBucket(size uint64) string {
	switch {
	case size < 1024*1024:
		return SizeTiny
	case size < 10*1024*1024:
		return SizeSmall
	case size < 100*1024*1024:
		return SizeMedium
	default:
		return SizeLarge
	}
}

func truncate(records []types.FileRecord, n int) []types.FileRecord {
	if len(records) > n {
		records = records[:n]
	}
	out := make([]types.FileRecord, len(records))
	copy(out, records)
	return out
}
