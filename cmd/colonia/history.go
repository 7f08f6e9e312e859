package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colonia/internal/platform/tui"
	"github.com/vovakirdan/colonia/internal/registry"
	"github.com/vovakirdan/colonia/internal/storage"
)

var (
	flagLimit  int
	flagBest   bool
	flagEvents int64
	flagTUI    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Display the most recent recorded colonies, or the most populous ones
with --best. Use the global --scenario flag to show a single scenario.

Examples:
  colonia history
  colonia history --best --scenario eboracum
  colonia history --events 12
  colonia history --tui`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagBest, "best", false, "Order by final population instead of date")
	historyCmd.Flags().Int64Var(&flagEvents, "events", 0, "Print the event log of the run with this ID")
	historyCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse the history interactively")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg, rc := loadSettings()

	if flagScenario != "" {
		mustScenario(flagScenario)
	}

	store, err := storage.Open(cfg.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagTUI:
		w, h := screenSize(rc)
		if _, err := tui.RunHistory(store, w, h); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case flagEvents > 0:
		printEvents(store, flagEvents)
	default:
		printRuns(store, flagScenario)
	}
}

func printRuns(store *storage.Store, scenario string) {
	var (
		runs []storage.Run
		err  error
	)
	if flagBest {
		runs, err = store.BestRuns(scenario, flagLimit)
	} else {
		runs, err = store.RecentRuns(scenario, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	title := "all scenarios"
	if scenario != "" {
		title = registry.Title(scenario)
	}
	fmt.Printf("Annals - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No colonies recorded yet.")
		fmt.Println()
		fmt.Println("Run 'colonia play' to found the first one!")
		return
	}

	fmt.Printf("  %-5s  %-12s  %-10s  %6s  %10s  %-11s  %s\n", "ID", "Scenario", "Player", "Days", "Population", "Outcome", "Date")
	fmt.Printf("  %-5s  %-12s  %-10s  %6s  %10s  %-11s  %s\n", "--", "--------", "------", "----", "----------", "-------", "----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-12s  %-10s  %6d  %10d  %-11s  %s\n",
			r.ID, r.Scenario, r.Player, r.Days, r.Population, r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if scenario == "" {
		return
	}
	stats, err := store.Stats(scenario)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Bankruptcies: %d\n",
			stats.Runs, stats.BestPop, stats.AvgPop, stats.Bankruptcies)
	}
}

func printEvents(store *storage.Store, runID int64) {
	events, err := store.RunEvents(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving events: %v\n", err)
		os.Exit(1)
	}
	if len(events) == 0 {
		fmt.Printf("Run %d has no recorded events.\n", runID)
		return
	}
	for _, e := range events {
		fmt.Println(e)
	}
}
