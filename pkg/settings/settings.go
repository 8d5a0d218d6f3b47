// Package settings persists application settings, including the default
// rule configuration, as a JSON document. Only the accessor contract
// matters to the pipeline; the file format is an implementation detail.
package settings

import (
	"encoding/json"
	"path/filepath"
	"sync"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/config"
	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/filesystem"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/types"
)

// Settings is the persisted application state.
type Settings struct {
	Theme            string            `json:"theme"`
	Rules            config.RuleConfig `json:"rules"`
	AutoPreview      bool              `json:"auto_preview"`
	ConfirmDeletions bool              `json:"confirm_deletions"`
	MaxFileSizeMB    int               `json:"max_file_size"`
}

// Defaults returns the settings a fresh installation starts with.
func Defaults() Settings {
	return Settings{
		Theme:            "light",
		Rules:            config.Default(),
		ConfirmDeletions: true,
		MaxFileSizeMB:    100,
	}
}

// Manager loads and saves settings. Safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	fs       types.FS
	path     string
	settings Settings
	logger   zerolog.Logger
}

// NewManager creates a manager for the settings file at path, initialized
// to defaults until Load is called.
func NewManager(fs types.FS, path string) *Manager {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Manager{
		fs:       fs,
		path:     path,
		settings: Defaults(),
		logger:   logging.GetLogger("settings"),
	}
}

// Load reads the settings file, layering it over the defaults. A missing
// file is not an error; the defaults stay in effect.
func (m *Manager) Load() error {
	data, err := m.fs.ReadFile(m.path)
	if err != nil {
		m.logger.Debug().Str("path", m.path).Msg("No settings file, using defaults")
		return nil
	}

	k := koanf.New(".")

	defaultMap, err := toMap(Defaults())
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to prepare default settings")
	}
	if err := k.Load(confmap.Provider(defaultMap, "."), nil); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}
	if err := k.Load(rawbytes.Provider(data), kjson.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to parse %s", m.path)
	}

	var loaded Settings
	if err := k.UnmarshalWithConf("", &loaded, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to decode %s", m.path)
	}

	m.mu.Lock()
	m.settings = loaded
	m.mu.Unlock()
	return nil
}

// Save writes the current settings as indented JSON.
func (m *Manager) Save() error {
	m.mu.RLock()
	data, err := json.MarshalIndent(m.settings, "", "  ")
	m.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to encode settings")
	}

	if dir := filepath.Dir(m.path); dir != "." {
		if err := m.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "failed to create %s", dir)
		}
	}
	return m.fs.WriteFile(m.path, append(data, '\n'), 0644)
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Rules returns the persisted rule configuration.
func (m *Manager) Rules() config.RuleConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Rules
}

// Update replaces the current settings in memory. Call Save to persist.
func (m *Manager) Update(s Settings) {
	m.mu.Lock()
	m.settings = s
	m.mu.Unlock()
}

func toMap(s Settings) (map[string]interface{}, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
