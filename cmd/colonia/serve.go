package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colonia/internal/config"
	"github.com/vovakirdan/colonia/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the colonia SSH server",
	Long: `Start an SSH server that lets users connect and govern colonies.

Each SSH connection gets its own session with a scenario picker menu.
Runs are recorded per-server (all users share the same annals).
With --chronicle every colony is archived under <dir>/<user>/.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.colonia/host_key

Examples:
  colonia serve                           # Listen on :23235 with auto-generated key
  colonia serve --ssh :2222               # Listen on port 2222
  colonia serve --host-key ./my_host_key  # Use specific host key
  colonia serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagChronicle, "chronicle", "", "Directory for per-user event chronicles")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, rc := loadSettings()
	mustScenario(rc.Scenario)

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = config.ExpandHome(flagHostKey)
	srvCfg.DBPath = cfg.HistoryDB
	srvCfg.ChronicleDir = chronicleDir(cfg)
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	srvCfg.Game = rc

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting colonia SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23235")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
