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

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/games/t2048"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// Game is the configuration shared by all sessions. Each session gets its own copy.
	Game config.T2048Config

	// Difficulty is the preset preselected in the session selector.
	Difficulty config.DifficultyPreset

	// Logger receives session events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.DefaultT2048Config(),
		Difficulty:  config.DifficultyNormal,
	}
}

// SSHServer wraps a Wish SSH server for the game.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tilemerge-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionIDKey stores the session id in the ssh context.
type sessionIDKey struct{}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	id, _ := sshSession.Context().Value(sessionIDKey{}).(string)
	model := NewSessionModel(s.config.Game, s.config.Difficulty, cfg, s.logger.With("session", id))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware assigns a session id and logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := uuid.NewString()
		sshSession.Context().SetValue(sessionIDKey{}, id)

		start := time.Now()
		s.logger.Info("session started",
			"session", id,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"session", id,
			"user", sshSession.User(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
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

// sessionScreen is the screen a session is showing.
type sessionScreen int

const (
	screenSelector sessionScreen = iota
	screenGame
	screenCodex
)

// SessionModel manages the full session flow: selector -> game or codex -> selector.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	gameConfig config.T2048Config
	levels     []t2048.Level
	preset     config.DifficultyPreset
	config     core.RuntimeConfig
	logger     *log.Logger

	screen    sessionScreen
	selector  SelectorModel
	gameModel Model
	codex     CodexModel
	quitting  bool
}

// NewSessionModel creates a new session model with its own copy of the game configuration.
func NewSessionModel(gameCfg config.T2048Config, preset config.DifficultyPreset, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	levels, err := t2048.LevelsFromConfig(gameCfg)
	if err != nil {
		logger.Warn("invalid levels, using defaults", "err", err)
		gameCfg = config.DefaultT2048Config()
		levels, _ = t2048.LevelsFromConfig(gameCfg)
	}

	return SessionModel{
		gameConfig: gameCfg,
		levels:     levels,
		preset:     preset,
		config:     cfg,
		logger:     logger,
		selector:   NewSelectorModel(levels, preset, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.selector.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenCodex:
		return m.updateCodex(msg)
	default:
		return m.updateSelector(msg)
	}
}

// toSelector returns to a fresh selector.
func (m SessionModel) toSelector() (tea.Model, tea.Cmd) {
	m.screen = screenSelector
	m.selector = NewSelectorModel(m.levels, m.preset, m.config.ScreenW, m.config.ScreenH)
	return m, m.selector.Init()
}

// updateSelector handles updates when in the selector.
func (m SessionModel) updateSelector(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSelector, cmd := m.selector.Update(msg)
	if sel, ok := newSelector.(SelectorModel); ok {
		m.selector = sel
	}

	if m.selector.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.selector.Selected()
	if selected == nil {
		return m, cmd
	}
	m.preset = selected.Difficulty

	if selected.Choice == ChoiceCodex {
		m.screen = screenCodex
		m.codex = NewCodexModel(m.config.ScreenW, m.config.ScreenH)
		return m, m.codex.Init()
	}

	game := t2048.New()
	if selected.Choice == ChoiceEndless {
		game = t2048.NewEndless()
	}
	cfg := m.gameConfig
	config.ApplyT2048Preset(&cfg, selected.Difficulty)
	game.Configure(cfg, selected.Level)

	m.logger.Info("game started", "game", game.ID(), "level", selected.Level, "difficulty", selected.Difficulty)
	m.gameModel = NewModel(game, m.config)
	m.screen = screenGame
	return m, m.gameModel.Init()
}

// updateGame handles updates when in a game.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.BackToMenu() || m.gameModel.IsQuitting() {
		st := m.gameModel.Game().State()
		m.logger.Info("game ended", "game", m.gameModel.Game().ID(), "won", st.Won, "over", st.GameOver)
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		return m.toSelector()
	}

	return m, cmd
}

// updateCodex handles updates when in the codex.
func (m SessionModel) updateCodex(msg tea.Msg) (tea.Model, tea.Cmd) {
	newCodex, cmd := m.codex.Update(msg)
	if codex, ok := newCodex.(CodexModel); ok {
		m.codex = codex
	}

	if m.codex.IsGoingBack() {
		return m.toSelector()
	}
	if m.codex.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenCodex:
		return m.codex.View()
	default:
		return m.selector.View()
	}
}
