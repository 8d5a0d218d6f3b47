package analyzer

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Priority orders recommendations for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Recommendation is one cleanup suggestion derived from a Stats report.
type Recommendation struct {
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	PotentialSavings uint64   `json:"potential_savings"`
	Priority         Priority `json:"priority"`
}

// Thresholds in bytes for the recommendation heuristics.
const (
	tmpThreshold  = 100 * 1024 * 1024
	oldThreshold  = 500 * 1024 * 1024
	dupeThreshold = 100 * 1024 * 1024
)

// Recommendations derives cleanup suggestions from a report.
func Recommendations(stats *Stats) []Recommendation {
	var recs []Recommendation

	if tmpSize := stats.ByExtension[".tmp"]; tmpSize > tmpThreshold {
		recs = append(recs, Recommendation{
			Type:             "temporary",
			Description:      fmt.Sprintf("Large temporary files found (%s)", humanize.Bytes(tmpSize)),
			PotentialSavings: tmpSize,
			Priority:         PriorityHigh,
		})
	}

	if oldSize := stats.ByAge[AgeOverYear]; oldSize > oldThreshold {
		recs = append(recs, Recommendation{
			Type:        "old_files",
			Description: fmt.Sprintf("Large amount of old files (%s older than 1 year)", humanize.Bytes(oldSize)),
			// Rough estimate: not everything old is deletable
			PotentialSavings: oldSize / 2,
			Priority:         PriorityMedium,
		})
	}

	if stats.DuplicateWaste > dupeThreshold {
		recs = append(recs, Recommendation{
			Type:             "duplicates",
			Description:      fmt.Sprintf("Duplicate files found (%s potentially recoverable)", humanize.Bytes(stats.DuplicateWaste)),
			PotentialSavings: stats.DuplicateWaste,
			Priority:         PriorityMedium,
		})
	}

	return recs
}
