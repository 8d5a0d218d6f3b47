package config

import (
	"regexp"

	"github.com/arthur-debert/scour/pkg/errors"
)

// CompiledRules is a RuleConfig with its regex patterns compiled once.
// Malformed patterns are dropped after being reported, so they behave as
// never-matching during evaluation.
type CompiledRules struct {
	Config RuleConfig

	// ExtensionPatterns match against a record's extension, anchored at
	// the start, case-insensitive
	ExtensionPatterns []*regexp.Regexp

	// NamePatterns match anywhere in a record's base name, case-insensitive
	NamePatterns []*regexp.Regexp

	// ExtensionSources and NameSources hold the original pattern text for
	// each compiled entry, index-aligned even when malformed patterns were
	// dropped. Reported reasons use these.
	ExtensionSources []string
	NameSources      []string
}

// Compile compiles the pattern rules of cfg. The returned errors carry the
// PATTERN_INVALID code, one per malformed pattern; the compiled rules are
// still usable with those patterns excluded.
func Compile(cfg RuleConfig) (*CompiledRules, []error) {
	compiled := &CompiledRules{Config: cfg}
	var errs []error

	for _, pat := range cfg.DeleteExtensions {
		// Anchored to mirror a match-at-start semantic for extensions
		re, err := regexp.Compile("(?i)^(?:" + pat + ")")
		if err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid extension pattern %q", pat))
			continue
		}
		compiled.ExtensionPatterns = append(compiled.ExtensionPatterns, re)
		compiled.ExtensionSources = append(compiled.ExtensionSources, pat)
	}

	for _, pat := range cfg.NamePatterns {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid name pattern %q", pat))
			continue
		}
		compiled.NamePatterns = append(compiled.NamePatterns, re)
		compiled.NameSources = append(compiled.NameSources, pat)
	}

	return compiled, errs
}
