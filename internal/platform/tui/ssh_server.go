package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/colonia/internal/core"
	"github.com/vovakirdan/colonia/internal/storage"
)

// SSHServerConfig configures the colony SSH server.
type SSHServerConfig struct {
	Address      string        // listen address, ":23235" by default
	HostKeyPath  string        // generated under ~/.colonia when empty
	DBPath       string        // shared run history
	ChronicleDir string        // per-user chronicles, disabled when empty
	IdleTimeout  time.Duration // idle connections are dropped after this
	Game         core.RuntimeConfig
}

// DefaultSSHServerConfig returns the settings `colonia serve` starts from.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.colonia/history.db",
		IdleTimeout: 30 * time.Minute,
		Game:        core.DefaultConfig(),
	}
}

// SSHServer serves the scenario menu over SSH. Every connection governs
// its own colonies; only the run history is shared.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer prepares a server. A run history that cannot be opened is
// logged and the server runs without one.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	srv := &SSHServer{
		config: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "colonia-ssh",
		}),
	}

	if store, err := storage.Open(cfg.DBPath); err != nil {
		srv.logger.Warn("could not open run history", "error", err)
	} else {
		srv.store = store
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".colonia", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	user := sess.User()
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", user)
		return nil, nil
	}

	cfg := s.config.Game
	cfg.ScreenW, cfg.ScreenH = pty.Window.Width, pty.Window.Height
	cfg.Player = user
	// Each colony founded from the menu draws a fresh seed.
	cfg.Seed = 0

	model := NewSessionModel(s.store, cfg).
		WithChronicleDir(s.userChronicleDir(user)).
		WithLogger(s.logger.With("user", user))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// userChronicleDir returns where a user's colonies are archived, or "".
func (s *SSHServer) userChronicleDir(user string) string {
	if s.config.ChronicleDir == "" {
		return ""
	}
	return filepath.Join(s.config.ChronicleDir, user)
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("connected")
		next(sess)
		l.Info("disconnected")
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("listening", "address", s.config.Address, "scenario", s.config.Game.Scenario)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("serve failed", "error", err)
		}
	}()

	<-stop
	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown closes the listener, waiting up to ten seconds for sessions.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
