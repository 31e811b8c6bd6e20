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
	"github.com/google/uuid"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/session"
	"github.com/vovakirdan/gridsnake/internal/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gridsnake/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Runtime is the board and tick settings every session plays with.
	Runtime core.RuntimeConfig

	// Skin is the initial skin for rulesets that let players choose one.
	Skin *snake.Skin

	// Scores backs the high scores. Sessions share one score book.
	Scores *storage.Book

	// Logger defaults to a stderr logger with the gridsnake-ssh prefix.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
	}
}

// SSHServer serves the terminal client over SSH with Wish. Every connection
// gets its own game driver; only the high scores are shared.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	scores   *storage.Book
	sessions *session.Registry
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gridsnake-ssh",
		})
	}

	scores := cfg.Scores
	if scores == nil {
		logger.Warn("no score database, high scores are kept in memory")
		scores = storage.NewBook(nil)
	}

	srv := &SSHServer{
		config:   cfg,
		scores:   scores,
		sessions: session.NewRegistry(),
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".gridsnake", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates the app for one SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sshSession.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "gridsnake needs an interactive terminal (ssh -t)")
		return nil, nil
	}

	variant, err := registry.Get(registry.DefaultVariant)
	if err != nil {
		s.logger.Error("default variant missing", "error", err)
		return nil, nil
	}

	id := session.ID(uuid.NewString())
	rt := s.config.Runtime
	rt.Seed = 0

	app := NewAppModel(GameOptions{
		Variant:   variant,
		Runtime:   rt,
		Skin:      s.config.Skin,
		Logger:    s.logger.With("session", id, "user", sshSession.User()),
		Painter:   NewPainter(bubbletea.MakeRenderer(sshSession)),
		SessionID: id,
	}, s.scores, true)

	s.sessions.Register(sshHandle{id: id, ctx: sshSession.Context()})
	go func() {
		<-sshSession.Context().Done()
		app.Close()
		s.sessions.Unregister(id)
		s.logger.Debug("session closed", "session", id, "active", s.sessions.Count())
	}()

	s.logger.Info("player joined", "session", id, "user", sshSession.User(), "active", s.sessions.Count())
	return app, []tea.ProgramOption{tea.WithAltScreen()}
}

// sshHandle registers an SSH connection with the session registry. Frames
// go through the connection's own Bubble Tea program, so Send is a no-op.
type sshHandle struct {
	id  session.ID
	ctx context.Context
}

func (h sshHandle) ID() session.ID        { return h.id }
func (h sshHandle) Send(session.Event)    {}
func (h sshHandle) Done() <-chan struct{} { return h.ctx.Done() }

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		return fmt.Errorf("ssh: %w", err)
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Sessions returns the number of connected players.
func (s *SSHServer) Sessions() int {
	return s.sessions.Count()
}
