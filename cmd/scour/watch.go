package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/scour/pkg/activity"
	"github.com/arthur-debert/scour/pkg/batch"
	"github.com/arthur-debert/scour/pkg/cleaner"
	"github.com/arthur-debert/scour/pkg/scheduler"
)

var (
	watchAt    string
	watchDay   string
	watchQuick bool
)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Run a recurring cleanup of a folder in the foreground",
	Long: `watch registers a daily (or, with --day, weekly) cleanup of the folder
and keeps running until interrupted. Each firing runs the same pipeline
as the clean command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRules()
		if err != nil {
			return err
		}

		recorder := activity.NewLog(activity.Options{})
		c := cleaner.New(cleaner.Options{Recorder: recorder})

		s := scheduler.New(func(req scheduler.CleanupRequest) {
			summary, err := c.Clean(cmd.Context(), req.Folder, req.Rules, cleaner.CleanOptions{
				Quick: watchQuick,
				Batch: batch.Options{DryRun: dryRun},
			})
			if err != nil {
				fmt.Printf("%s cleanup of %s failed: %v\n", req.Time.Format("15:04"), req.Folder, err)
				return
			}
			fmt.Printf("%s cleaned %s: %d succeeded, %d failed\n",
				req.Time.Format("15:04"), req.Folder, summary.Succeeded, summary.Failed)
		})

		var id string
		if watchDay != "" {
			day, ok := weekdays[strings.ToLower(watchDay)]
			if !ok {
				return fmt.Errorf("unknown weekday %q", watchDay)
			}
			id, err = s.ScheduleWeekly(day, watchAt, args[0], cfg)
		} else {
			id, err = s.ScheduleDaily(watchAt, args[0], cfg)
		}
		if err != nil {
			return err
		}

		s.Start()
		defer s.Stop()
		fmt.Printf("watching %s (job %s), press Ctrl-C to stop\n", args[0], id)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		select {
		case <-stop:
		case <-cmd.Context().Done():
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchAt, "at", "03:00", "Wall-clock time to run, as HH:MM")
	watchCmd.Flags().StringVar(&watchDay, "day", "", "Run weekly on this day instead of daily")
	watchCmd.Flags().BoolVar(&watchQuick, "quick", false, "Use the quick filter rules instead of scored evaluation")
}
