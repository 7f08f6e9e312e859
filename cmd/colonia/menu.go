package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/colonia/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scenario picker menu",
	Long: `Start in interactive menu mode, the same flow SSH players get.

Use arrow keys or j/k to navigate, Enter to found a colony, Tab for the
recorded runs. Esc on the dashboard records the run and returns to the menu.

Examples:
  colonia menu
  colonia menu --fps 15
  colonia menu --db ./history.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, rc := loadSettings()
	rc.ScreenW, rc.ScreenH = screenSize(rc)

	store := openStore(cfg.HistoryDB)
	if store != nil {
		defer store.Close()
	}

	model := tui.NewSessionModel(store, rc).
		WithLogger(logger).
		WithChronicleDir(chronicleDir(cfg))

	var opts []tea.ProgramOption
	if cfg.Fullscreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
