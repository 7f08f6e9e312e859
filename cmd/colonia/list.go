package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colonia/internal/registry"
	"github.com/vovakirdan/colonia/internal/sim"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenarios",
	Long:  `Shows a list of all scenarios a colony can be founded from.`,
	Run:   runList,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show construction projects and laws",
	Long: `Shows every construction project with its variants, and every law the
senate can pass. Names are accepted by 'colonia run --build' and '--enact'.`,
	Run: runCatalog,
}

func runList(_ *cobra.Command, _ []string) {
	scenarios := registry.List()

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scenarios {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range scenarios {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'colonia play --scenario <id>' to found a colony.")
}

func runCatalog(_ *cobra.Command, _ []string) {
	projects := sim.DefaultProjects()

	maxNameLen := len("Project")
	for _, p := range projects {
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	fmt.Println("Construction projects:")
	fmt.Println()
	fmt.Printf("  %-*s  %8s  %8s  %5s  %s\n", maxNameLen, "Project", "Cost", "Upkeep", "Days", "Description")
	fmt.Printf("  %-*s  %8s  %8s  %5s  %s\n", maxNameLen, "-------", "----", "------", "----", "-----------")
	for _, p := range projects {
		fmt.Printf("  %-*s  %8.2f  %8.2f  %5d  %s\n", maxNameLen, p.Name, p.Cost, p.Maintenance, p.BuildTime, p.Description)
		if len(p.Variants) < 2 {
			continue
		}
		for i, v := range p.Variants {
			fmt.Printf("  %-*s    :%d %s\n", maxNameLen, "", i, v.Name)
		}
	}

	fmt.Println()
	fmt.Println("Laws:")
	fmt.Println()
	for _, l := range sim.DefaultLaws() {
		fmt.Printf("  %s\n", l.Name)
		fmt.Printf("    %s\n", l.Description)
		fmt.Printf("    Costs %d %s capacity for %d days.\n", l.Cost, l.Capacity, l.CostDuration)
	}
}
