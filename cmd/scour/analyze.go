package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scour/pkg/analyzer"
	"github.com/arthur-debert/scour/pkg/dupes"
	"github.com/arthur-debert/scour/pkg/filesystem"
)

var (
	analyzeNoCache bool
	analyzeCached  bool
	analyzeDupes   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <folder>",
	Short: "Report disk usage statistics and cleanup recommendations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]
		cache := analyzer.NewCache(filesystem.NewOS(), "")

		var stats *analyzer.Stats
		if analyzeCached {
			if cached, when, ok := cache.Load(folder); ok {
				stats = cached
				fmt.Printf("(cached analysis from %s)\n", when.Format("2006-01-02 15:04"))
			}
		}
		if stats == nil {
			a := analyzer.New(analyzer.Options{})
			fresh, err := a.Analyze(cmd.Context(), folder)
			if err != nil {
				return err
			}
			stats = fresh
			if analyzeDupes {
				groups, err := dupes.NewFinder(nil).Find(cmd.Context(), folder)
				if err != nil {
					return err
				}
				for key, paths := range groups {
					stats.DuplicateWaste += key.Size * uint64(len(paths)-1)
				}
			}
			if !analyzeNoCache {
				if err := cache.Save(folder, stats); err != nil {
					fmt.Printf("warning: could not cache analysis: %v\n", err)
				}
			}
		}

		fmt.Printf("%s: %d files, %d folders, %s total\n",
			folder, stats.FileCount, stats.FolderCount, humanize.Bytes(stats.TotalSize))

		fmt.Println("\nLargest files:")
		for _, rec := range stats.Largest {
			fmt.Printf("  %-12s %s\n", humanize.Bytes(rec.Size), rec.Path)
		}

		fmt.Println("\nBy extension:")
		type extSize struct {
			ext  string
			size uint64
		}
		var exts []extSize
		for ext, size := range stats.ByExtension {
			exts = append(exts, extSize{ext, size})
		}
		sort.Slice(exts, func(i, j int) bool { return exts[i].size > exts[j].size })
		for _, e := range exts {
			fmt.Printf("  %-8s %s\n", e.ext, humanize.Bytes(e.size))
		}

		recs := analyzer.Recommendations(stats)
		if len(recs) > 0 {
			fmt.Println("\nRecommendations:")
			for _, rec := range recs {
				fmt.Printf("  [%s] %s (up to %s reclaimable)\n",
					strings.ToUpper(string(rec.Priority)), rec.Description,
					humanize.Bytes(rec.PotentialSavings))
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "Do not persist the analysis report")
	analyzeCmd.Flags().BoolVar(&analyzeCached, "cached", false, "Serve the last persisted report instead of re-walking")
	analyzeCmd.Flags().BoolVar(&analyzeDupes, "dupes", false, "Also detect duplicates to inform recommendations")
}
