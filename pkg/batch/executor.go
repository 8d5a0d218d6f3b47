package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/filesystem"
	"github.com/arthur-debert/scour/pkg/guard"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/operations"
	"github.com/arthur-debert/scour/pkg/types"
)

const (
	// DefaultMaxParallelism bounds concurrent file operations
	DefaultMaxParallelism = 4

	// DefaultItemTimeout bounds each individual file operation
	DefaultItemTimeout = 30 * time.Second
)

// Options configures an Executor.
type Options struct {
	// MaxParallelism is the worker-pool size. Defaults to 4.
	MaxParallelism int

	// ItemTimeout bounds each file operation. Defaults to 30s.
	ItemTimeout time.Duration

	// FS defaults to the OS filesystem.
	FS types.FS

	// Guard is consulted before every delete. Defaults to a Guard over FS.
	Guard *guard.Guard

	// DryRun previews the batch: every record is skipped, nothing touches
	// the filesystem.
	DryRun bool

	// MoveTarget is the destination folder for move batches.
	MoveTarget string

	// CollisionPolicy for move batches. Defaults to fail-on-collision.
	CollisionPolicy operations.CollisionPolicy

	// CompressionLevel for compress batches. Zero means the gzip default.
	CompressionLevel int

	// RemoveSource deletes the original after a successful compress.
	// The default is to retain it.
	RemoveSource bool

	// OnProgress, OnOutcome and OnComplete are invoked from the
	// aggregation loop, in completion order. All are optional.
	OnProgress func(types.ProgressEvent)
	OnOutcome  func(types.FileOperationOutcome)
	OnComplete func(types.BatchSummary)

	// Logger overrides the default component logger.
	Logger zerolog.Logger
}

// Executor runs batches of file operations.
type Executor struct {
	opts    Options
	guard   *guard.Guard
	fs      types.FS
	logger  zerolog.Logger
	stopped atomic.Bool
}

// New creates an executor
func New(opts Options) *Executor {
	if opts.MaxParallelism <= 0 {
		opts.MaxParallelism = DefaultMaxParallelism
	}
	if opts.ItemTimeout <= 0 {
		opts.ItemTimeout = DefaultItemTimeout
	}
	if opts.CollisionPolicy == "" {
		opts.CollisionPolicy = operations.CollisionFail
	}
	if opts.CompressionLevel == 0 {
		opts.CompressionLevel = operations.DefaultCompressionLevel
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	g := opts.Guard
	if g == nil {
		g = guard.New(guard.Options{FS: fs})
	}

	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("batch")
	}

	return &Executor{
		opts:   opts,
		guard:  g,
		fs:     fs,
		logger: logger,
	}
}

// Stop requests cooperative cancellation. Operations already dispatched to
// workers finish, but their outcomes are discarded once the flag has been
// observed. Safe to call from any goroutine, any number of times.
func (e *Executor) Stop() {
	e.stopped.Store(true)
}

// Run executes kind over every record and returns the aggregated summary.
// Per-file errors are captured in outcomes; Run itself never fails.
func (e *Executor) Run(ctx context.Context, records []types.FileRecord, kind types.OperationKind) types.BatchSummary {
	start := time.Now()
	e.stopped.Store(false)

	batchID := uuid.NewString()
	logger := e.logger.With().Str("batch", batchID).Str("operation", string(kind)).Logger()
	logger.Info().Int("files", len(records)).Msg("Batch started")

	summary := types.BatchSummary{TotalFiles: len(records)}

	jobs := make(chan types.FileRecord)
	results := make(chan types.FileOperationOutcome)

	var wg sync.WaitGroup
	for i := 0; i < e.opts.MaxParallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.worker(ctx, jobs, results, kind)
		}()
	}

	// Feeder stops dispatching once the stop flag or cancellation is seen
	go func() {
		defer close(jobs)
		for _, rec := range records {
			if e.stopped.Load() {
				return
			}
			select {
			case jobs <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single-writer aggregation: counts stay consistent without locks and
	// callbacks fire in completion order
	completed := 0
	for outcome := range results {
		if e.stopped.Load() {
			// Discard outcomes of already-dispatched work after stop
			continue
		}

		completed++
		switch {
		case outcome.Skipped:
			summary.Skipped++
		case outcome.Success:
			summary.Succeeded++
			summary.BytesAffected += outcome.Bytes
		default:
			summary.Failed++
			summary.Errors = append(summary.Errors, outcome.Error)
		}

		if e.opts.OnOutcome != nil {
			e.opts.OnOutcome(outcome)
		}
		if e.opts.OnProgress != nil {
			e.opts.OnProgress(types.ProgressEvent{
				Percent: completed * 100 / len(records),
				Status:  "Processing " + outcome.File,
			})
		}
	}

	summary.Duration = time.Since(start)

	logger.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Uint64("bytes", summary.BytesAffected).
		Dur("duration", summary.Duration).
		Msg("Batch complete")

	if e.opts.OnComplete != nil {
		e.opts.OnComplete(summary)
	}
	return summary
}

// worker pulls records off the jobs channel and reports their outcomes.
// After a stop it keeps draining the channel without doing work so the
// feeder never blocks.
func (e *Executor) worker(ctx context.Context, jobs <-chan types.FileRecord, results chan<- types.FileOperationOutcome, kind types.OperationKind) {
	for rec := range jobs {
		if e.stopped.Load() {
			continue
		}
		results <- e.processOne(ctx, rec, kind)
	}
}

// processOne runs a single operation under the per-item timeout. A hung
// operation is abandoned to its context and counted as failed; the worker
// moves on immediately.
func (e *Executor) processOne(ctx context.Context, rec types.FileRecord, kind types.OperationKind) types.FileOperationOutcome {
	start := time.Now()

	opCtx, cancel := context.WithTimeout(ctx, e.opts.ItemTimeout)
	defer cancel()

	done := make(chan types.FileOperationOutcome, 1)
	go func() {
		done <- e.apply(opCtx, rec, kind)
	}()

	select {
	case outcome := <-done:
		outcome.Duration = time.Since(start)
		return outcome
	case <-opCtx.Done():
		err := errors.Wrapf(opCtx.Err(), errors.ErrOpTimeout, "operation timed out after %s", e.opts.ItemTimeout)
		e.logger.Warn().Str("path", rec.Path).Msg("Operation timed out")
		return types.FileOperationOutcome{
			File:      rec.Name,
			Path:      rec.Path,
			Operation: kind,
			Error:     err.Error(),
			Duration:  time.Since(start),
		}
	}
}

func (e *Executor) apply(ctx context.Context, rec types.FileRecord, kind types.OperationKind) types.FileOperationOutcome {
	outcome := types.FileOperationOutcome{
		File:      rec.Name,
		Path:      rec.Path,
		Operation: kind,
	}

	if e.opts.DryRun {
		outcome.Skipped = true
		return outcome
	}

	switch kind {
	case types.OperationDelete:
		if allowed, reason := e.guard.CheckDelete(rec); !allowed {
			outcome.Error = reason
			return outcome
		}
		if err := operations.Delete(ctx, e.fs, rec.Path); err != nil {
			outcome.Error = err.Error()
			return outcome
		}

	case types.OperationMove:
		if _, err := operations.Move(ctx, e.fs, rec, e.opts.MoveTarget, e.opts.CollisionPolicy); err != nil {
			outcome.Error = err.Error()
			return outcome
		}

	case types.OperationCompress:
		result, err := operations.Compress(ctx, e.fs, rec, e.opts.CompressionLevel, !e.opts.RemoveSource)
		if err != nil {
			outcome.Error = err.Error()
			return outcome
		}
		e.logger.Debug().
			Str("path", rec.Path).
			Str("archive", result.CompressedPath).
			Float64("ratio", result.Ratio).
			Msg("Compressed file")

	default:
		outcome.Error = errors.Newf(errors.ErrInvalidInput, "unknown operation: %s", kind).Error()
		return outcome
	}

	outcome.Success = true
	outcome.Bytes = rec.Size
	return outcome
}
