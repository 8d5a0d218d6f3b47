// Package cleaner wires the pipeline together: scan, evaluate, execute.
// It is the one entry point external callers (CLI, scheduler) go through.
package cleaner

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/batch"
	"github.com/arthur-debert/scour/pkg/config"
	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/filesystem"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/rules"
	"github.com/arthur-debert/scour/pkg/scanner"
	"github.com/arthur-debert/scour/pkg/types"
)

// Cleaner runs the scan-evaluate-execute pipeline over a folder.
type Cleaner struct {
	fs       types.FS
	scan     *scanner.Scanner
	recorder types.ActivityRecorder
	logger   zerolog.Logger
}

// Options configures a Cleaner.
type Options struct {
	// FS defaults to the OS filesystem
	FS types.FS

	// Classifier optionally annotates records with MIME categories
	Classifier types.Classifier

	// Recorder receives audit events. Defaults to a no-op recorder.
	Recorder types.ActivityRecorder
}

// CleanOptions configures one Clean invocation.
type CleanOptions struct {
	// Operation defaults to delete
	Operation types.OperationKind

	// Quick selects the OR-union filter path instead of scored evaluation
	Quick bool

	// Batch carries executor settings (parallelism, timeout, dry-run,
	// move/compress parameters, event callbacks)
	Batch batch.Options
}

// PreviewEntry pairs a scanned record with its evaluation.
type PreviewEntry struct {
	Record     types.FileRecord       `json:"record"`
	Evaluation types.EvaluationResult `json:"evaluation"`
}

// New creates a Cleaner
func New(opts Options) *Cleaner {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = types.NoopRecorder{}
	}
	return &Cleaner{
		fs:       fs,
		scan:     scanner.New(scanner.Options{FS: fs, Classifier: opts.Classifier}),
		recorder: recorder,
		logger:   logging.GetLogger("cleaner"),
	}
}

// Preview scans folder and evaluates every record without touching
// anything. Fails only on scan or configuration errors.
func (c *Cleaner) Preview(ctx context.Context, folder string, cfg config.RuleConfig) ([]PreviewEntry, error) {
	engine, err := c.prepare(cfg)
	if err != nil {
		return nil, err
	}

	records, err := c.scan.ScanAll(ctx, folder)
	if err != nil {
		c.recorder.RecordError(err.Error())
		return nil, err
	}
	c.recorder.RecordScan(folder, len(records), c.scan.TotalSize())

	entries := make([]PreviewEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, PreviewEntry{Record: rec, Evaluation: engine.Evaluate(rec)})
	}
	return entries, nil
}

// Clean scans folder, selects matching records and executes the requested
// operation over them. Per-file failures land in the summary; only scan
// and configuration problems surface as errors.
func (c *Cleaner) Clean(ctx context.Context, folder string, cfg config.RuleConfig, opts CleanOptions) (types.BatchSummary, error) {
	engine, err := c.prepare(cfg)
	if err != nil {
		return types.BatchSummary{}, err
	}

	if opts.Operation == "" {
		opts.Operation = types.OperationDelete
	}
	if !opts.Operation.Valid() {
		return types.BatchSummary{}, errors.Newf(errors.ErrInvalidInput, "unknown operation: %s", opts.Operation)
	}

	records, err := c.scan.ScanAll(ctx, folder)
	if err != nil {
		c.recorder.RecordError(err.Error())
		return types.BatchSummary{}, err
	}
	c.recorder.RecordScan(folder, len(records), c.scan.TotalSize())

	var selected []types.FileRecord
	if opts.Quick {
		selected = engine.FilterFiles(records)
	} else {
		for _, rec := range records {
			if engine.Evaluate(rec).Decision {
				selected = append(selected, rec)
			}
		}
	}

	c.logger.Info().
		Str("folder", folder).
		Int("scanned", len(records)).
		Int("selected", len(selected)).
		Str("operation", string(opts.Operation)).
		Msg("Pipeline selection complete")

	batchOpts := opts.Batch
	if batchOpts.FS == nil {
		batchOpts.FS = c.fs
	}
	summary := batch.New(batchOpts).Run(ctx, selected, opts.Operation)

	c.recorder.RecordBatch(folder, opts.Operation, summary)
	return summary, nil
}

// prepare validates and compiles the configuration. Validation problems
// abort; malformed patterns are reported once and then ignored.
func (c *Cleaner) prepare(cfg config.RuleConfig) (*rules.Engine, error) {
	if errs := config.Validate(cfg); len(errs) > 0 {
		first := errs[0]
		c.recorder.RecordError(first.Error())
		return nil, errors.Wrap(first, errors.ErrConfigInvalid, "invalid rule configuration")
	}

	compiled, patternErrs := config.Compile(cfg)
	for _, perr := range patternErrs {
		c.logger.Warn().Err(perr).Msg("Ignoring malformed pattern rule")
		c.recorder.RecordError(perr.Error())
	}

	return rules.New(compiled), nil
}
