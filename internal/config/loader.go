package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the YAML config file kept under the user config dir.
	FileName = "config.yaml"
	// legacyFileName is the JSON record written by earlier tool generations.
	legacyFileName = "config.json"
	// dirName is the subdirectory of the OS user config dir.
	dirName = "infra"
)

// Dir returns the directory holding the config record and the audit log,
// e.g. ~/.config/infra on Linux.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, dirName), nil
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// CandidatePaths returns the locations probed by LoadDefault, in order: the
// YAML file, the JSON file the previous tool generation wrote, and the legacy
// ~/.infra directory.
func CandidatePaths() ([]string, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return []string{
		filepath.Join(dir, FileName),
		filepath.Join(dir, legacyFileName),
		filepath.Join(home, ".infra", legacyFileName),
	}, nil
}

// Load reads the config record at path. YAML and the legacy JSON format are
// both accepted; defaults are applied after parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses raw config bytes and applies defaults. YAML is a superset of
// JSON, so the legacy format parses through the same path.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault finds and reads the config record from the standard locations.
// A missing record is not an error: it returns an empty config with defaults
// applied and an empty path, so commands can rely on flags alone.
func LoadDefault() (*Config, string, error) {
	paths, err := CandidatePaths()
	if err != nil {
		return nil, "", err
	}
	for _, p := range paths {
		cfg, err := Load(p)
		if err == nil {
			return cfg, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, p, err
		}
	}
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg, "", nil
}
