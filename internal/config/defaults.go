package config

import (
	_ "embed"
)

//go:embed defaults/colonia.yaml
var defaultColoniaYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		RootFolder: "~/.colonia",
		GUI:        true,
		HardMode:   false,
		Language:   0,
		Fullscreen: true,
		Resolution: Resolution{
			Width:  100,
			Height: 32,
		},
		Game: GameConfig{
			Scenario: "eboracum",
			Speed:    1,
			FPS:      30,
		},
		HistoryDB: "~/.colonia/history.db",
	}
}
