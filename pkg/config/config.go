package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/types"
)

// CategoryRule controls what happens to files of one category.
type CategoryRule struct {
	Delete bool `json:"delete"`
}

// RuleConfig is the user-authored cleanup policy. Optional thresholds are
// pointers: a nil field means the rule is not set and matches nothing.
//
// The quick-filter toggles (delete_tmp, delete_log, delete_cache,
// file_age_days, custom_extensions) drive FilterFiles; the scored fields
// (max_age_days, delete_extensions, name_patterns, excluded_folders,
// categories) drive Evaluate. min_size_mb is shared by both paths.
type RuleConfig struct {
	DeleteTmp        bool     `json:"delete_tmp"`
	DeleteLog        bool     `json:"delete_log"`
	DeleteCache      bool     `json:"delete_cache"`
	FileAgeDays      *int     `json:"file_age_days,omitempty"`
	MinSizeMB        *float64 `json:"min_size_mb,omitempty"`
	CustomExtensions []string `json:"custom_extensions,omitempty"`

	MaxAgeDays       *int                    `json:"max_age_days,omitempty"`
	DeleteExtensions []string                `json:"delete_extensions,omitempty"`
	NamePatterns     []string                `json:"name_patterns,omitempty"`
	ExcludedFolders  []string                `json:"excluded_folders,omitempty"`
	Categories       map[string]CategoryRule `json:"categories,omitempty"`
}

// Default returns the built-in policy the original application ships with.
func Default() RuleConfig {
	age := 30
	size := 1.0
	return RuleConfig{
		DeleteTmp:        true,
		FileAgeDays:      &age,
		MinSizeMB:        &size,
		CustomExtensions: []string{".bak", ".old"},
	}
}

// Load reads a rule configuration from a JSON or TOML file, layered over
// the given defaults (pass a zero RuleConfig for no defaults).
func Load(path string, defaults RuleConfig) (RuleConfig, error) {
	k := koanf.New(".")

	defaultMap, err := toMap(defaults)
	if err != nil {
		return RuleConfig{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to prepare defaults")
	}
	if err := k.Load(confmap.Provider(defaultMap, "."), nil); err != nil {
		return RuleConfig{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	parser := parserFor(path)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return RuleConfig{}, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load rules from %s", path)
	}

	var cfg RuleConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return RuleConfig{}, errors.Wrapf(err, errors.ErrConfigLoad, "failed to parse rules from %s", path)
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON, the round-trip format.
func Save(fs types.FS, path string, cfg RuleConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to encode rules")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "failed to create %s", dir)
		}
	}
	return fs.WriteFile(path, append(data, '\n'), 0644)
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Parser()
	}
	return kjson.Parser()
}

// toMap flattens a RuleConfig through its JSON form so confmap can layer it.
func toMap(cfg RuleConfig) (map[string]interface{}, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks threshold values. It does not validate pattern syntax;
// that is Compile's job so pattern problems surface exactly once.
func Validate(cfg RuleConfig) []error {
	var errs []error

	if cfg.MaxAgeDays != nil && *cfg.MaxAgeDays < 0 {
		errs = append(errs, errors.New(errors.ErrConfigInvalid, "max_age_days must be a non-negative integer"))
	}
	if cfg.FileAgeDays != nil && *cfg.FileAgeDays < 0 {
		errs = append(errs, errors.New(errors.ErrConfigInvalid, "file_age_days must be a non-negative integer"))
	}
	if cfg.MinSizeMB != nil && *cfg.MinSizeMB < 0 {
		errs = append(errs, errors.New(errors.ErrConfigInvalid, "min_size_mb must be a non-negative number"))
	}

	return errs
}

// IsEmpty reports whether no rule field is set at all. An entirely empty
// configuration matches nothing.
func IsEmpty(cfg RuleConfig) bool {
	return !cfg.DeleteTmp && !cfg.DeleteLog && !cfg.DeleteCache &&
		cfg.FileAgeDays == nil && cfg.MinSizeMB == nil && len(cfg.CustomExtensions) == 0 &&
		cfg.MaxAgeDays == nil && len(cfg.DeleteExtensions) == 0 && len(cfg.NamePatterns) == 0 &&
		len(cfg.ExcludedFolders) == 0 && len(cfg.Categories) == 0
}
