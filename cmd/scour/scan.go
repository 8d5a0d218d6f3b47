package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scour/pkg/classify"
	"github.com/arthur-debert/scour/pkg/cleaner"
)

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Scan a folder and preview what the rules would select",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRules()
		if err != nil {
			return err
		}

		// MIME hints refine category rules during previews
		c := cleaner.New(cleaner.Options{Classifier: classify.New()})
		entries, err := c.Preview(cmd.Context(), args[0], cfg)
		if err != nil {
			return err
		}

		var matched int
		var matchedBytes uint64
		for _, entry := range entries {
			if !entry.Evaluation.Decision {
				continue
			}
			matched++
			matchedBytes += entry.Record.Size
			fmt.Printf("%s  %s  score=%d\n", entry.Record.Path,
				humanize.Bytes(entry.Record.Size), entry.Evaluation.Score)
			for _, reason := range entry.Evaluation.Reasons {
				fmt.Printf("    %s\n", reason)
			}
		}

		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("%d of %d files selected (%s)\n", matched, len(entries), humanize.Bytes(matchedBytes))
		return nil
	},
}
