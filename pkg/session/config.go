package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MaxRecent caps the recent-files and recent-directories lists.
const MaxRecent = 5

// Config holds the user preferences persisted between runs.
type Config struct {
	RecentFiles       []string `yaml:"recent_files,omitempty"`
	RecentDirectories []string `yaml:"recent_directories,omitempty"`
	LastDirectory     string   `yaml:"last_directory,omitempty"`

	// AutoBackup makes every save take a backup copy first.
	AutoBackup bool `yaml:"auto_backup"`

	// ExiftoolPath overrides the executable resolved from $PATH.
	ExiftoolPath string `yaml:"exiftool_path,omitempty"`

	// TimeoutSeconds bounds each tool invocation. Zero means the default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// DefaultConfigPath returns the per-user config location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "tagwriter", "config.yaml"), nil
}

// LoadConfig reads the config file. A missing file is not an error: it
// yields zero-value defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config file, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// AddRecentFile records a file at the head of the recent list, deduplicated
// and capped at MaxRecent. Files that no longer exist are pruned.
func (c *Config) AddRecentFile(path string) {
	c.RecentFiles = pushRecent(c.RecentFiles, path)
}

// AddRecentDirectory records a directory the same way.
func (c *Config) AddRecentDirectory(path string) {
	c.RecentDirectories = pushRecent(c.RecentDirectories, path)
}

func pushRecent(list []string, path string) []string {
	out := make([]string, 0, MaxRecent)
	out = append(out, path)
	for _, p := range list {
		if p == path {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		out = append(out, p)
		if len(out) == MaxRecent {
			break
		}
	}
	return out
}
