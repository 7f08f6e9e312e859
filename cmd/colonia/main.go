// colonia is a terminal simulation of a Roman frontier colony.
//
// Usage:
//
//	colonia list              - List available scenarios
//	colonia catalog           - Show construction projects and laws
//	colonia play              - Govern a colony
//	colonia menu              - Pick a scenario interactively
//	colonia run --days N      - Simulate without a terminal UI
//	colonia serve             - Start SSH server for remote play
//	colonia history           - Show recorded runs
//	colonia config            - Show the effective configuration
//
// Global flags:
//
//	--config <path>     - Configuration file
//	--scenario <id>     - Scenario to found (default from config)
//	--fps <rate>        - UI frame rate (default from config)
//	--seed <value>      - RNG seed for reproducible colonies
//	--db <path>         - Run history database (default from config)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/colonia/internal/config"
	"github.com/vovakirdan/colonia/internal/core"
	"github.com/vovakirdan/colonia/internal/registry"

	// Import scenarios to register them
	_ "github.com/vovakirdan/colonia/internal/scenario"
)

var (
	// Global flags
	flagConfig   string
	flagScenario string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "colonia",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colonia",
	Short: "Colonia - Govern a Roman colony in your terminal",
	Long: `Colonia simulates a frontier colony of the Roman Republic one day at a
time. Raise buildings, pass laws and answer the demands of Rome while
keeping the treasury and the people alive.

Available commands:
  list     - Show all scenarios
  catalog  - Show construction projects and laws
  play     - Govern a colony
  menu     - Interactive scenario picker
  run      - Headless simulation
  serve    - Start SSH server for remote play
  history  - View recorded runs
  config   - Show the effective configuration

Examples:
  colonia play
  colonia play --scenario eboracum_debug --seed 42
  colonia run --days 365 --build farm:1 --auto-answer 0
  colonia serve --ssh :2222
  colonia history`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagScenario, "scenario", "", "Scenario ID (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "UI frames per second (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings reads the configuration and applies the global flags on top.
// Config problems are logged and never fatal.
func loadSettings() (config.Config, core.RuntimeConfig) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Warn("using default configuration", "error", err)
	}

	if flagScenario != "" {
		cfg.Game.Scenario = flagScenario
	}
	if flagFPS > 0 {
		cfg.Game.FPS = flagFPS
	}
	if flagDBPath != "" {
		cfg.HistoryDB = flagDBPath
	}

	rc := core.RuntimeConfig{
		ScreenW:  cfg.Resolution.Width,
		ScreenH:  cfg.Resolution.Height,
		FPS:      cfg.Game.FPS,
		Seed:     flagSeed,
		Scenario: cfg.Game.Scenario,
		Language: cfg.Language,
		HardMode: cfg.HardMode,
		Speed:    cfg.Game.Speed,
		Player:   os.Getenv("USER"),
	}
	return cfg, rc
}

// mustScenario exits when the scenario is not registered.
func mustScenario(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'colonia list' to see available scenarios.")
		os.Exit(1)
	}
}
