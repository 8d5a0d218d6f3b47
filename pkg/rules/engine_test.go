// Test Type: Unit Test
// Description: Tests for the rules engine - additive scoring and decisions

package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scour/pkg/config"
	"github.com/arthur-debert/scour/pkg/rules"
	"github.com/arthur-debert/scour/pkg/types"
)

// fixedNow keeps age arithmetic deterministic across the suite.
var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newEngine(t *testing.T, cfg config.RuleConfig) *rules.Engine {
	t.Helper()
	compiled, errs := config.Compile(cfg)
	require.Empty(t, errs)
	return rules.NewWithClock(compiled, func() time.Time { return fixedNow })
}

func record(name string, size uint64, age time.Duration) types.FileRecord {
	return types.FileRecord{
		Path:      "/data/" + name,
		Name:      name,
		Size:      size,
		Modified:  fixedNow.Add(-age),
		Extension: lowerExt(name),
	}
}

func lowerExt(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i:]
		}
	}
	return ""
}

func TestEvaluate(t *testing.T) {
	t.Run("age_rule_scores_one", func(t *testing.T) {
		days := 30
		e := newEngine(t, config.RuleConfig{MaxAgeDays: &days})

		res := e.Evaluate(record("old.dat", 10, 31*24*time.Hour))
		assert.Equal(t, 1, res.Score)
		assert.False(t, res.Decision, "one point is below the decision threshold")
		assert.Equal(t, []string{"Old file (31 days > 30 days)"}, res.Reasons)
	})

	t.Run("age_at_threshold_does_not_score", func(t *testing.T) {
		days := 30
		e := newEngine(t, config.RuleConfig{MaxAgeDays: &days})

		res := e.Evaluate(record("edge.dat", 10, 30*24*time.Hour))
		assert.Zero(t, res.Score, "age must be strictly greater than the limit")
	})

	t.Run("size_rule_scores_one", func(t *testing.T) {
		mb := 1.0
		e := newEngine(t, config.RuleConfig{MinSizeMB: &mb})

		res := e.Evaluate(record("big.bin", 2*1024*1024, 0))
		assert.Equal(t, 1, res.Score)
		require.Len(t, res.Reasons, 1)
		assert.Contains(t, res.Reasons[0], "Large file")
	})

	t.Run("extension_pattern_scores_two_and_decides", func(t *testing.T) {
		e := newEngine(t, config.RuleConfig{DeleteExtensions: []string{`\.tmp`}})

		res := e.Evaluate(record("scratch.tmp", 10, 0))
		assert.Equal(t, 2, res.Score)
		assert.True(t, res.Decision)
		assert.Equal(t, []string{`Extension matches: \.tmp`}, res.Reasons)
	})

	t.Run("extension_patterns_first_match_stops", func(t *testing.T) {
		e := newEngine(t, config.RuleConfig{DeleteExtensions: []string{`\.tmp`, `\.t.*`}})

		res := e.Evaluate(record("scratch.tmp", 10, 0))
		assert.Equal(t, 2, res.Score, "only the first matching extension pattern counts")
		assert.Len(t, res.Reasons, 1)
	})

	t.Run("extension_patterns_are_case_insensitive", func(t *testing.T) {
		e := newEngine(t, config.RuleConfig{DeleteExtensions: []string{`\.TMP`}})

		res := e.Evaluate(record("scratch.tmp", 10, 0))
		assert.Equal(t, 2, res.Score)
	})

	t.Run("name_patterns_accumulate", func(t *testing.T) {
		e := newEngine(t, config.RuleConfig{NamePatterns: []string{"backup", `\d{4}`}})

		res := e.Evaluate(record("backup-2023.sql", 10, 0))
		assert.Equal(t, 2, res.Score, "each matching name pattern adds a point")
		assert.True(t, res.Decision)
		assert.Equal(t, []string{
			"Name matches pattern: backup",
			`Name matches pattern: \d{4}`,
		}, res.Reasons)
	})

	t.Run("protected_folder_subtracts_ten", func(t *testing.T) {
		e := newEngine(t, config.RuleConfig{
			DeleteExtensions: []string{`\.tmp`},
			ExcludedFolders:  []string{"important"},
		})

		rec := record("keep.tmp", 10, 0)
		rec.Path = "/data/important/keep.tmp"
		res := e.Evaluate(rec)

		assert.Equal(t, -8, res.Score)
		assert.False(t, res.Decision)
		assert.Contains(t, res.Reasons, "Protected folder: important")
	})

	t.Run("protection_is_outweighed_at_twelve_points", func(t *testing.T) {
		// Ten name patterns (+10) plus an extension pattern (+2) reach the
		// threshold even against one -10 protection penalty.
		patterns := make([]string, 10)
		for i := range patterns {
			patterns[i] = "data"
		}
		e := newEngine(t, config.RuleConfig{
			DeleteExtensions: []string{`\.tmp`},
			NamePatterns:     patterns,
			ExcludedFolders:  []string{"vault"},
		})

		rec := record("data.tmp", 10, 0)
		rec.Path = "/vault/data.tmp"
		res := e.Evaluate(rec)

		assert.Equal(t, 2, res.Score)
		assert.True(t, res.Decision)
	})

	t.Run("category_delete_scores_three", func(t *testing.T) {
		e := newEngine(t, config.RuleConfig{
			Categories: map[string]config.CategoryRule{
				"temporary": {Delete: true},
			},
		})

		res := e.Evaluate(record("state.bak", 10, 0))
		assert.Equal(t, 3, res.Score)
		assert.True(t, res.Decision)
		assert.Equal(t, []string{"Category: temporary"}, res.Reasons)
	})

	t.Run("category_without_delete_flag_is_inert", func(t *testing.T) {
		e := newEngine(t, config.RuleConfig{
			Categories: map[string]config.CategoryRule{
				"temporary": {Delete: false},
			},
		})

		res := e.Evaluate(record("state.bak", 10, 0))
		assert.Zero(t, res.Score)
	})

	t.Run("reasons_follow_accumulation_order", func(t *testing.T) {
		days := 10
		mb := 0.5
		e := newEngine(t, config.RuleConfig{
			MaxAgeDays:       &days,
			MinSizeMB:        &mb,
			DeleteExtensions: []string{`\.bak`},
			NamePatterns:     []string{"old"},
			ExcludedFolders:  []string{"archive"},
			Categories: map[string]config.CategoryRule{
				"temporary": {Delete: true},
			},
		})

		rec := record("old-stuff.bak", 1024*1024, 20*24*time.Hour)
		rec.Path = "/archive/old-stuff.bak"
		res := e.Evaluate(rec)

		assert.Equal(t, -2, res.Score) // 1+1+2+1-10+3
		assert.False(t, res.Decision)
		require.Len(t, res.Reasons, 6)
		assert.Equal(t, "Old file (20 days > 10 days)", res.Reasons[0])
		assert.Contains(t, res.Reasons[1], "Large file")
		assert.Equal(t, `Extension matches: \.bak`, res.Reasons[2])
		assert.Equal(t, "Name matches pattern: old", res.Reasons[3])
		assert.Equal(t, "Protected folder: archive", res.Reasons[4])
		assert.Equal(t, "Category: temporary", res.Reasons[5])
	})

	t.Run("empty_configuration_matches_nothing", func(t *testing.T) {
		e := newEngine(t, config.RuleConfig{})

		res := e.Evaluate(record("anything.xyz", 1<<30, 365*24*time.Hour))
		assert.Zero(t, res.Score)
		assert.False(t, res.Decision)
		assert.Empty(t, res.Reasons)
	})

	t.Run("dropped_malformed_pattern_keeps_reasons_aligned", func(t *testing.T) {
		compiled, errs := config.Compile(config.RuleConfig{
			DeleteExtensions: []string{"[bad", `\.tmp`},
		})
		require.Len(t, errs, 1)

		e := rules.NewWithClock(compiled, func() time.Time { return fixedNow })
		res := e.Evaluate(record("scratch.tmp", 10, 0))

		assert.Equal(t, 2, res.Score)
		assert.Equal(t, []string{`Extension matches: \.tmp`}, res.Reasons)
	})
}

func TestFilterFiles(t *testing.T) {
	t.Run("quick_scan_scenario", func(t *testing.T) {
		days := 30
		mb := 1.0
		e := newEngine(t, config.RuleConfig{
			DeleteTmp:   true,
			FileAgeDays: &days,
			MinSizeMB:   &mb,
		})

		records := []types.FileRecord{
			record("a.tmp", 10, 24*time.Hour),
			record("notes.txt", 512*1024, 24*time.Hour),
		}

		retained := e.FilterFiles(records)
		require.Len(t, retained, 1)
		assert.Equal(t, "a.tmp", retained[0].Name)
	})

	t.Run("any_enabled_rule_retains", func(t *testing.T) {
		days := 30
		mb := 1.0
		e := newEngine(t, config.RuleConfig{
			DeleteTmp:        true,
			DeleteLog:        true,
			DeleteCache:      true,
			FileAgeDays:      &days,
			MinSizeMB:        &mb,
			CustomExtensions: []string{".bak"},
		})

		records := []types.FileRecord{
			record("a.tmp", 10, 0),
			record("b.temp", 10, 0),
			record("server.log", 10, 0),
			record("BrowserCache.db", 10, 0),
			record("save.BAK", 10, 0),
			record("stale.txt", 10, 45*24*time.Hour),
			record("huge.iso", 5*1024*1024, 0),
			record("keeper.txt", 10, 0),
		}

		retained := e.FilterFiles(records)
		names := make([]string, len(retained))
		for i, rec := range retained {
			names[i] = rec.Name
		}

		assert.Equal(t, []string{
			"a.tmp", "b.temp", "server.log", "BrowserCache.db",
			"save.BAK", "stale.txt", "huge.iso",
		}, names)
	})

	t.Run("size_rule_alone_retains_large_files", func(t *testing.T) {
		mb := 1.0
		e := newEngine(t, config.RuleConfig{MinSizeMB: &mb})

		retained := e.FilterFiles([]types.FileRecord{
			record("notes.txt", 10*1024*1024, 0),
			record("small.txt", 1024, 0),
		})

		require.Len(t, retained, 1)
		assert.Equal(t, "notes.txt", retained[0].Name)
	})

	t.Run("unset_thresholds_match_nothing", func(t *testing.T) {
		e := newEngine(t, config.RuleConfig{})

		retained := e.FilterFiles([]types.FileRecord{
			record("a.tmp", 1<<30, 365*24*time.Hour),
		})
		assert.Empty(t, retained)
	})
}
