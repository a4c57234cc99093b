package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "deadpixel.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.deadpixel/config.yaml -> ./configs/deadpixel.yaml -> embedded default.
// Files are merged over Default(), so a file only needs the keys it changes.
// An explicit customPath must exist and parse; the other locations are
// skipped silently when missing or malformed.
func Load(customPath string) (Config, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the configuration came
// from: a file path, "embedded" or "builtin".
func LoadWithSource(customPath string) (Config, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Default(), "", err
		}
		if err := cfg.Validate(); err != nil {
			return Default(), "", fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{
		UserConfigPath(),
		filepath.Join("configs", FileName),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			continue
		}
		if cfg.Validate() != nil {
			continue
		}
		return cfg, path, nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil || cfg.Validate() != nil {
		return Default(), "builtin", nil
	}
	return cfg, "embedded", nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func loadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// UserConfigPath returns ~/.deadpixel/config.yaml, or empty if the home
// directory is unavailable.
func UserConfigPath() string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// UserDir returns ~/.deadpixel, or empty if the home directory is
// unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".deadpixel")
}

// ExpandHome replaces a leading "~" with the home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
