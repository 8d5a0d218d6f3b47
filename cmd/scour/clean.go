package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scour/pkg/activity"
	"github.com/arthur-debert/scour/pkg/batch"
	"github.com/arthur-debert/scour/pkg/cleaner"
	"github.com/arthur-debert/scour/pkg/operations"
	"github.com/arthur-debert/scour/pkg/types"
)

var (
	cleanOperation    string
	cleanQuick        bool
	cleanTarget       string
	cleanParallelism  int
	cleanItemTimeout  time.Duration
	cleanRenameOnHit  bool
	cleanRemoveSource bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <folder>",
	Short: "Apply the rules to a folder and execute the selected operation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRules()
		if err != nil {
			return err
		}

		collision := operations.CollisionFail
		if cleanRenameOnHit {
			collision = operations.CollisionRename
		}

		recorder := activity.NewLog(activity.Options{})
		c := cleaner.New(cleaner.Options{Recorder: recorder})

		summary, err := c.Clean(cmd.Context(), args[0], cfg, cleaner.CleanOptions{
			Operation: types.OperationKind(cleanOperation),
			Quick:     cleanQuick,
			Batch: batch.Options{
				MaxParallelism:  cleanParallelism,
				ItemTimeout:     cleanItemTimeout,
				DryRun:          dryRun,
				MoveTarget:      cleanTarget,
				CollisionPolicy: collision,
				RemoveSource:    cleanRemoveSource,
				OnProgress: func(p types.ProgressEvent) {
					fmt.Printf("\r[%3d%%] %s", p.Percent, p.Status)
				},
			},
		})
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("succeeded: %d  failed: %d  skipped: %d  freed: %s\n",
			summary.Succeeded, summary.Failed, summary.Skipped,
			humanize.Bytes(summary.BytesAffected))
		for _, msg := range summary.Errors {
			fmt.Printf("  error: %s\n", msg)
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanOperation, "operation", "delete", "Operation to run: delete, move or compress")
	cleanCmd.Flags().BoolVar(&cleanQuick, "quick", false, "Use the quick filter rules instead of scored evaluation")
	cleanCmd.Flags().StringVar(&cleanTarget, "target", "", "Destination folder for move operations")
	cleanCmd.Flags().IntVar(&cleanParallelism, "parallel", batch.DefaultMaxParallelism, "Maximum concurrent file operations")
	cleanCmd.Flags().DurationVar(&cleanItemTimeout, "item-timeout", batch.DefaultItemTimeout, "Per-file operation timeout")
	cleanCmd.Flags().BoolVar(&cleanRenameOnHit, "rename-on-collision", false, "Rename instead of failing when a move destination exists")
	cleanCmd.Flags().BoolVar(&cleanRemoveSource, "remove-source", false, "Delete the original after a successful compress")
}
