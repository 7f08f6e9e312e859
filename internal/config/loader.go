package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name searched for on disk.
const FileName = "colonia.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.colonia/config.yaml -> ./configs/colonia.yaml -> embedded default.
// Environment variables override whatever file was used.
//
// The returned Config is always usable. A non-nil error describes files
// that could not be read or parsed and were skipped in favor of defaults;
// callers should log it as a warning.
func Load(customPath string) (Config, error) {
	var errs []error

	cfg, err := loadFile(customPath)
	if err != nil {
		errs = append(errs, err)
	}

	if err := ParseEnv(&cfg); err != nil {
		errs = append(errs, err)
	}

	cfg.Normalize()
	return cfg, errors.Join(errs...)
}

func loadFile(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err == nil {
			return cfg, nil
		}
		def, _ := parse(defaultColoniaYAML)
		return def, err
	}

	var errs []error

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if cfg, err := readFile(userCfgPath); err == nil {
			return cfg, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	// Try local configs directory
	if cfg, err := readFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, errors.Join(errs...)
	} else if !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, err)
	}

	// Use embedded default YAML
	cfg, err := parse(defaultColoniaYAML)
	if err != nil {
		return DefaultConfig(), errors.Join(append(errs, err)...) // Fallback to hardcoded if embed fails
	}
	return cfg, errors.Join(errs...)
}

func readFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parse decodes YAML over the built-in defaults so missing fields keep
// their default values.
func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// ParseEnv loads overrides from COLONIA_* environment variables.
func ParseEnv(target *Config) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".colonia", filename)
}
