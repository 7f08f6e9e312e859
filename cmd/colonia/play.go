package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/colonia/internal/chronicle"
	"github.com/vovakirdan/colonia/internal/config"
	"github.com/vovakirdan/colonia/internal/core"
	"github.com/vovakirdan/colonia/internal/platform/tui"
	"github.com/vovakirdan/colonia/internal/storage"
)

var flagChronicle string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Govern a colony",
	Long: `Found a colony of the configured scenario and govern it.

Controls:
  0-9        - Speed (0 pauses)
  Space      - Pause / resume
  C          - Construction catalog (Left/Right variant, Enter builds)
  L          - Laws (Enter enacts)
  E          - Event log
  H          - Project help
  P / M / X  - Halt site / toggle upkeep / abandon site
  Esc        - Back to the dashboard
  Q/Ctrl+C   - Quit (the run is recorded)

Examples:
  colonia play
  colonia play --scenario eboracum_debug
  colonia play --seed 42 --chronicle ./annals
  colonia play --config ./my-colonia.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagChronicle, "chronicle", "", "Directory for the compressed event chronicle")
}

// screenSize returns the terminal size, falling back to the configured resolution.
func screenSize(rc core.RuntimeConfig) (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return rc.ScreenW, rc.ScreenH
}

// openStore opens the run history, logging instead of failing.
func openStore(path string) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		// Continue without storage - the colony still works
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, rc := loadSettings()
	mustScenario(rc.Scenario)

	if !cfg.GUI {
		fmt.Fprintln(os.Stderr, "Error: the terminal UI is disabled in the configuration (gui: false)")
		fmt.Fprintln(os.Stderr, "Run 'colonia run' for a headless simulation.")
		os.Exit(1)
	}

	rc.ScreenW, rc.ScreenH = screenSize(rc)

	session, err := core.NewSession(rc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error founding colony: %v\n", err)
		os.Exit(1)
	}

	var ch *chronicle.Chronicle
	if dir := chronicleDir(cfg); dir != "" {
		ch = chronicle.Open(dir, session.City)
	}

	store := openStore(cfg.HistoryDB)

	final, runErr := tui.Run(session, store, ch, cfg.Fullscreen)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running colony: %v\n", runErr)
		os.Exit(1)
	}

	if err := final.SaveErr(); err != nil {
		logger.Warn("could not record run", "error", err)
	} else if id := final.RunID(); id > 0 {
		logger.Info("run recorded", "id", id, "days", session.City.Tick(), "outcome", session.City.Current().Outcome())
	}
}

// chronicleDir returns the chronicle directory from the flag or the config.
func chronicleDir(cfg config.Config) string {
	if flagChronicle != "" {
		return config.ExpandHome(flagChronicle)
	}
	return config.ExpandHome(cfg.ChronicleDir)
}
