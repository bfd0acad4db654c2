package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the optional user defaults loaded from
// ~/.config/pretty-history/config.yaml. Flags override everything here.
type Config struct {
	Theme   string `yaml:"theme"`
	BaseDir string `yaml:"base_dir"`
	Color   string `yaml:"color"` // "auto", "always", or "never"
	Width   int    `yaml:"width"`
}

// configPath returns the config file location, honoring XDG_CONFIG_HOME.
func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pretty-history", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file is not an
// error; a present but unparseable one is, so a typo never silently
// falls back to defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Color != "" && cfg.Color != "auto" && cfg.Color != "always" && cfg.Color != "never" {
		return cfg, fmt.Errorf("parse %s: color must be auto, always, or never", path)
	}
	return cfg, nil
}
