package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/config"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/types"
)

// decisionThreshold is the score at which a file is retained for action.
const decisionThreshold = 2

// Engine evaluates file records against a compiled rule configuration.
// It is stateless given its configuration; Evaluate is pure.
type Engine struct {
	compiled *config.CompiledRules
	logger   zerolog.Logger

	// now is injectable so age arithmetic is deterministic in tests
	now func() time.Time
}

// New creates an engine for the given compiled rules
func New(compiled *config.CompiledRules) *Engine {
	return &Engine{
		compiled: compiled,
		logger:   logging.GetLogger("rules.engine"),
		now:      time.Now,
	}
}

// NewWithClock creates an engine with an injected clock
func NewWithClock(compiled *config.CompiledRules, now func() time.Time) *Engine {
	e := New(compiled)
	e.now = now
	return e
}

// Evaluate scores one record against the configuration and decides whether
// it should be acted upon. Accumulation order is fixed: age, size,
// extension patterns, name patterns, protected folders, categories.
func (e *Engine) Evaluate(rec types.FileRecord) types.EvaluationResult {
	cfg := e.compiled.Config
	score := 0
	var reasons []string

	// Age rule: +1
	if cfg.MaxAgeDays != nil {
		age := e.ageDays(rec)
		if age > *cfg.MaxAgeDays {
			score++
			reasons = append(reasons, fmt.Sprintf("Old file (%d days > %d days)", age, *cfg.MaxAgeDays))
		}
	}

	// Size rule: +1
	if cfg.MinSizeMB != nil {
		if float64(rec.Size) > *cfg.MinSizeMB*1024*1024 {
			score++
			reasons = append(reasons, fmt.Sprintf("Large file (%s)", humanize.Bytes(rec.Size)))
		}
	}

	// Extension patterns: +2, first match wins
	for i, re := range e.compiled.ExtensionPatterns {
		if re.MatchString(rec.Extension) {
			score += 2
			reasons = append(reasons, fmt.Sprintf("Extension matches: %s", e.compiled.ExtensionSources[i]))
			break
		}
	}

	// Name patterns: +1 per match, cumulative
	for i, re := range e.compiled.NamePatterns {
		if re.MatchString(rec.Name) {
			score++
			reasons = append(reasons, fmt.Sprintf("Name matches pattern: %s", e.compiled.NameSources[i]))
		}
	}

	// Protected folders: -10 per matching path substring
	for _, folder := range cfg.ExcludedFolders {
		if strings.Contains(rec.Path, folder) {
			score -= 10
			reasons = append(reasons, fmt.Sprintf("Protected folder: %s", folder))
		}
	}

	// Category rules: +3 when the category's delete flag is set
	if len(cfg.Categories) > 0 {
		cat := Categorize(rec)
		if rule, ok := cfg.Categories[string(cat)]; ok && rule.Delete {
			score += 3
			reasons = append(reasons, fmt.Sprintf("Category: %s", cat))
		}
	}

	return types.EvaluationResult{
		Decision: score >= decisionThreshold,
		Score:    score,
		Reasons:  reasons,
	}
}

// ageDays returns whole days since the record was last modified
func (e *Engine) ageDays(rec types.FileRecord) int {
	return int(e.now().Sub(rec.Modified).Hours() / 24)
}
