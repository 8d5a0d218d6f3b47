package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/scour/pkg/activity"
)

var (
	historyAction string
	historyLimit  int
	historyClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past scans and cleanups from the activity log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := activity.NewLog(activity.Options{})

		if historyClear {
			log.Clear()
			fmt.Println("activity log cleared")
			return nil
		}

		entries := log.List(activity.Filter{
			Action: activity.Action(historyAction),
			Limit:  historyLimit,
		})
		if len(entries) == 0 {
			fmt.Println("no activity recorded")
			return nil
		}

		for _, entry := range entries {
			fmt.Printf("%s  %-9s %s", entry.Timestamp.Format("2006-01-02 15:04:05"),
				entry.Action, entry.Details)
			if entry.Files > 0 {
				fmt.Printf(" (%d files)", entry.Files)
			}
			fmt.Printf("  [%s]\n", entry.Status)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyAction, "action", "", "Show only one action type (Scan, Deletion, Move, Compress, Error)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show, newest first")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Discard the activity log")
}
