package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/colonia/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after the config file, COLONIA_* environment
variables and global flags have been applied, followed by the resolved paths.

Examples:
  colonia config
  COLONIA_HARD_MODE=true colonia config --config ./my-colonia.yaml`,
	Run: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, _ := loadSettings()

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding configuration: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))

	fmt.Println()
	fmt.Printf("# resources: %s\n", cfg.ResourceFolder())
	fmt.Printf("# history:   %s\n", config.ExpandHome(cfg.HistoryDB))
	if dir := chronicleDir(cfg); dir != "" {
		fmt.Printf("# chronicle: %s\n", dir)
	}
}
