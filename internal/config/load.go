package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags, using
// the flags registered on the default command line.
func Load() (*Config, error) {
	return LoadWith(commandLine)
}

// LoadWith is Load with an explicit set of flag overrides.
func LoadWith(f *Flags) (*Config, error) {
	cfg := Default()

	// Explicit path takes priority.
	configPath := Path(f)
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	f.Apply(cfg)

	return cfg, nil
}

// Path returns the file LoadWith(f) reads, or "" when there is none.
func Path(f *Flags) string {
	if f != nil && f.Config != "" {
		return f.Config
	}
	return findConfigFile()
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./poolviz.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "PoolViz")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "PoolViz")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "poolviz")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "poolviz")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
