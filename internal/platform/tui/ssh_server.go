package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
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

	"github.com/vovakirdan/deadpixel/internal/core"
	"github.com/vovakirdan/deadpixel/internal/model"
	"github.com/vovakirdan/deadpixel/internal/sensor"
	"github.com/vovakirdan/deadpixel/internal/session"
	"github.com/vovakirdan/deadpixel/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.deadpixel/host_key.
	HostKeyPath string

	// DBPath is the path to the records database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game, Sensor and Preferences seed every remote session.
	Game        core.RuntimeConfig
	Sensor      sensor.Options
	Preferences model.UserPreferences

	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2222",
		DBPath:      "~/.deadpixel/deadpixel.db",
		IdleTimeout: 30 * time.Minute,
		Game:        core.DefaultConfig(),
		Sensor:      sensor.DefaultOptions(),
		Preferences: model.DefaultUserPreferences(),
	}
}

// SSHServer wraps a Wish SSH server serving the game.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	recorder *session.AsyncRecorder
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "deadpixel-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Open storage
	var target session.Recorder
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		// Continue without storage
	} else {
		srv.store = store
		target = store
		if err := store.SeedPreferences(cfg.Preferences); err != nil {
			logger.Warn("could not seed preferences", "error", err)
		}
	}
	srv.recorder = session.NewAsyncRecorder(target, session.DefaultRecordBuffer, logger)

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStorage()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".deadpixel", "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeStorage()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
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
		srv.closeStorage()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	var source RunSource
	if s.store != nil {
		source = s.store
	}

	opts := s.sessionOptions(sshSession.User(), pty.Window.Width, pty.Window.Height)
	m := NewSessionModel(opts, source)

	return m, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionOptions builds the game options of one remote session. Stored
// preferences take precedence over the configured ones, and changes made
// in the game are saved back.
func (s *SSHServer) sessionOptions(user string, width, height int) GameOptions {
	game := s.config.Game
	game.ScreenW = width
	game.ScreenH = height
	game.Seed = 0

	opts := GameOptions{
		Config:      game,
		Sensor:      s.config.Sensor,
		Recorder:    s.recorder,
		Preferences: s.config.Preferences,
		Logger:      s.logger.With("user", user),
	}
	if s.store == nil {
		return opts
	}

	prefs, err := s.store.LoadPreferences()
	if err != nil {
		opts.Logger.Warn("using configured preferences", "error", err)
	} else {
		opts.Preferences = prefs
	}
	opts.SavePreferences = s.store.SavePreferences
	return opts
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
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

// Shutdown gracefully stops the server and flushes pending records.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStorage()
	return err
}

func (s *SSHServer) closeStorage() {
	s.recorder.Close()
	if s.store != nil {
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages a full remote session: menu -> game or scores -> menu.
type SessionModel struct {
	opts     GameOptions
	source   RunSource
	screen   sessionScreen
	menu     MenuModel
	game     Model
	scores   ScoreboardModel
	width    int
	height   int
	notice   string
	quitting bool
}

// NewSessionModel creates a session starting at the main menu.
// source may be nil when no database is available.
func NewSessionModel(opts GameOptions, source RunSource) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := SessionModel{
		opts:   opts,
		source: source,
		width:  opts.Config.ScreenW,
		height: opts.Config.ScreenH,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) highestLevel() int {
	if m.source == nil {
		return 1
	}
	rec, err := m.source.Records()
	if err != nil {
		return 1
	}
	return rec.HighestLevel
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.highestLevel(), m.width, m.height)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// Stale frame from a finished game
		return m, nil
	}

	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Chosen() {
	case MenuPlay:
		return m.startGame(1)
	case MenuContinue:
		return m.startGame(m.highestLevel())
	case MenuScores:
		m.scores = NewScoreboardModel(m.source, m.width, m.height)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

func (m SessionModel) startGame(level int) (tea.Model, tea.Cmd) {
	opts := m.opts
	opts.Config.ScreenW = m.width
	opts.Config.ScreenH = m.height
	opts.Config.StartLevel = level

	game, err := NewModel(opts)
	if err != nil {
		m.opts.Logger.Error("could not start game", "error", err)
		m.notice = err.Error()
		m.menu = m.newMenu()
		return m, nil
	}

	m.notice = ""
	m.game = game
	m.screen = screenGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode. Quitting the game
// returns to the menu instead of closing the connection.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	if m.game.quitting {
		// The next game starts with the toggles of this one
		m.opts.Preferences = m.game.Controller().Preferences()
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is showing.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
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
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(m.notice, m.width)
	}
	return view
}
