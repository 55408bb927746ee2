// Package config loads the notion-ingest configuration file. The file is
// TOML at ~/.notion-ingest/config.toml by default; command-line flags
// override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk configuration.
type Config struct {
	// Token is the Notion integration token.
	Token string `toml:"token"`

	// PageIDs are the seed page ids to ingest.
	PageIDs []string `toml:"page_ids"`

	// DatabaseIDs are the seed database ids to ingest.
	DatabaseIDs []string `toml:"database_ids"`

	// Recursive enables crawling entities reachable from the seeds.
	Recursive bool `toml:"recursive"`

	// OutputDir is where rendered documents are written.
	OutputDir string `toml:"output_dir"`

	// DataDir holds the sync-state database.
	DataDir string `toml:"data_dir"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".notion-ingest", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file yields an empty config, not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path, creating parent directories. The file
// carries the integration token, so permissions are restricted.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SourceConfig renders the connector-facing key-value form.
func (c *Config) SourceConfig() map[string]string {
	return map[string]string{
		"page_ids":     strings.Join(c.PageIDs, ","),
		"database_ids": strings.Join(c.DatabaseIDs, ","),
		"recursive":    strconv.FormatBool(c.Recursive),
	}
}
