package rules

import (
	"strings"

	"github.com/arthur-debert/scour/pkg/types"
)

// FilterFiles is the quick-scan decision path: a record is retained when
// ANY of the enabled simple rules hold. Unset optional fields match
// nothing, so an empty configuration returns the empty subset.
//
// This path is independent of Evaluate's scoring model; the two must not
// be merged.
func (e *Engine) FilterFiles(records []types.FileRecord) []types.FileRecord {
	var retained []types.FileRecord

	for _, rec := range records {
		if e.matchesAny(rec) {
			retained = append(retained, rec)
		}
	}

	e.logger.Debug().
		Int("considered", len(records)).
		Int("retained", len(retained)).
		Msg("Quick filter complete")

	return retained
}

func (e *Engine) matchesAny(rec types.FileRecord) bool {
	cfg := e.compiled.Config

	if cfg.DeleteTmp && (rec.Extension == ".tmp" || rec.Extension == ".temp") {
		return true
	}
	if cfg.DeleteLog && rec.Extension == ".log" {
		return true
	}
	if cfg.DeleteCache && strings.Contains(strings.ToLower(rec.Name), "cache") {
		return true
	}

	for _, ext := range cfg.CustomExtensions {
		if strings.EqualFold(ext, rec.Extension) {
			return true
		}
	}

	if cfg.FileAgeDays != nil && e.ageDays(rec) > *cfg.FileAgeDays {
		return true
	}

	if cfg.MinSizeMB != nil && float64(rec.Size) > *cfg.MinSizeMB*1024*1024 {
		return true
	}

	return false
}
