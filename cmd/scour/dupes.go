package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scour/pkg/dupes"
)

var dupesCmd = &cobra.Command{
	Use:   "dupes <folder>",
	Short: "List duplicate files under a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := dupes.NewFinder(nil)
		groups, err := f.Find(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Println("no duplicates found")
			return nil
		}

		// Largest wasted space first
		type group struct {
			key   dupes.Key
			paths []string
		}
		sorted := make([]group, 0, len(groups))
		for key, paths := range groups {
			sorted = append(sorted, group{key, paths})
		}
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].key.Size*uint64(len(sorted[i].paths)) >
				sorted[j].key.Size*uint64(len(sorted[j].paths))
		})

		var wasted uint64
		for _, g := range sorted {
			fmt.Printf("%s (%s, %d copies)\n", g.key.Name, humanize.Bytes(g.key.Size), len(g.paths))
			sort.Strings(g.paths)
			for _, path := range g.paths {
				fmt.Printf("  %s\n", path)
			}
			wasted += g.key.Size * uint64(len(g.paths)-1)
		}
		fmt.Printf("\n%s reclaimable by keeping one copy of each\n", humanize.Bytes(wasted))
		return nil
	},
}
