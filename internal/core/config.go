// Package core holds the front-end independent pieces shared by the
// terminal UI, the SSH server and the headless runner: runtime settings,
// player actions and the Session that drives a colony.
package core

// RuntimeConfig contains the settings a front end starts a session with.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	FPS      int    // Frames per second of the UI loop (default 30)
	Seed     int64  // RNG seed for deterministic simulation
	Scenario string // Registered scenario ID
	Language int    // Display language index
	HardMode bool   // Halve starting resources
	Speed    int    // Initial speed, 0 pauses
	Player   string // Name recorded in the run history
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  100,
		ScreenH:  32,
		FPS:      30,
		Seed:     0, // 0 means use current time in platform layer
		Scenario: "eboracum",
		Speed:    1,
	}
}
