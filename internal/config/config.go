// Package config provides YAML-based configuration loading for the colony
// simulator, with environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config contains everything the front ends need to start a colony.
// Only Language reaches the simulation itself.
type Config struct {
	RootFolder string     `yaml:"root_folder" env:"COLONIA_ROOT"`
	GUI        bool       `yaml:"gui" env:"COLONIA_GUI"`
	HardMode   bool       `yaml:"hard_mode" env:"COLONIA_HARD_MODE"`
	Language   int        `yaml:"language" env:"COLONIA_LANGUAGE"`
	Fullscreen bool       `yaml:"fullscreen" env:"COLONIA_FULLSCREEN"`
	Resolution Resolution `yaml:"resolution"`
	Game       GameConfig `yaml:"game"`

	HistoryDB    string `yaml:"history_db" env:"COLONIA_HISTORY_DB"`
	ChronicleDir string `yaml:"chronicle_dir" env:"COLONIA_CHRONICLE_DIR"`
}

// Resolution is the fallback terminal size in cells, used when the real
// size cannot be read.
type Resolution struct {
	Width  int `yaml:"width" env:"COLONIA_WIDTH"`
	Height int `yaml:"height" env:"COLONIA_HEIGHT"`
}

// GameConfig holds the defaults for a new session.
type GameConfig struct {
	Scenario string `yaml:"scenario" env:"COLONIA_SCENARIO"`
	Speed    int    `yaml:"speed" env:"COLONIA_SPEED"`
	FPS      int    `yaml:"fps" env:"COLONIA_FPS"`
}

// ResourceFolder returns the folder holding bundled resources.
func (c Config) ResourceFolder() string {
	return filepath.Join(ExpandHome(c.RootFolder), "resources") + string(filepath.Separator)
}

// Normalize replaces invalid fields with their defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if strings.TrimSpace(c.RootFolder) == "" {
		c.RootFolder = def.RootFolder
	}
	if c.Language < 0 {
		c.Language = def.Language
	}
	if c.Resolution.Width <= 0 {
		c.Resolution.Width = def.Resolution.Width
	}
	if c.Resolution.Height <= 0 {
		c.Resolution.Height = def.Resolution.Height
	}
	if strings.TrimSpace(c.Game.Scenario) == "" {
		c.Game.Scenario = def.Game.Scenario
	}
	if c.Game.Speed < 0 || c.Game.Speed > 9 {
		c.Game.Speed = def.Game.Speed
	}
	if c.Game.FPS <= 0 || c.Game.FPS > 120 {
		c.Game.FPS = def.Game.FPS
	}
	if strings.TrimSpace(c.HistoryDB) == "" {
		c.HistoryDB = def.HistoryDB
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
