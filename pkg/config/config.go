// Package config persists user preferences between runs: the default
// search folder, the external viewer and the search history.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// MaxHistory caps the number of remembered search terms.
const MaxHistory = 100

// Config is the persisted application state.
type Config struct {
	// DefaultFolder is the folder tree scanned when no -dir is given.
	DefaultFolder string `yaml:"default_folder"`
	// ViewerPath overrides the OS default PDF viewer executable.
	ViewerPath string `yaml:"viewer_path,omitempty"`
	// SearchHistory holds past terms, most recent first.
	SearchHistory []string `yaml:"search_history,omitempty"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "pdfsift", "config.yaml")
}

func defaults() *Config {
	return &Config{DefaultFolder: filepath.Join(".", "pdfs")}
}

// Load reads the config at path. A missing file yields defaults without
// error; a config pointing at a folder that no longer exists falls back
// to the default folder rather than failing later at scan time.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.DefaultFolder == "" || !isDir(cfg.DefaultFolder) {
		cfg.DefaultFolder = defaults().DefaultFolder
	}
	if len(cfg.SearchHistory) > MaxHistory {
		cfg.SearchHistory = cfg.SearchHistory[:MaxHistory]
	}
	return cfg, nil
}

// Save writes the config atomically: temp file in the target directory,
// then rename, so a crash mid-write never corrupts the previous state.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// AddHistory records a search term: duplicates move to the front, and
// the list is capped at MaxHistory.
func (c *Config) AddHistory(term string) {
	if term == "" {
		return
	}
	if i := slices.Index(c.SearchHistory, term); i >= 0 {
		c.SearchHistory = slices.Delete(c.SearchHistory, i, i+1)
	}
	c.SearchHistory = slices.Insert(c.SearchHistory, 0, term)
	if len(c.SearchHistory) > MaxHistory {
		c.SearchHistory = c.SearchHistory[:MaxHistory]
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
