package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/deadpixel/internal/core"
	"github.com/vovakirdan/deadpixel/internal/model"
	"github.com/vovakirdan/deadpixel/internal/puzzle"
	"github.com/vovakirdan/deadpixel/internal/sensor"
	"github.com/vovakirdan/deadpixel/internal/session"
)

// hudHeight is the number of terminal rows above the canvas frame.
const hudHeight = 1

// bannerBg keeps overlay text on one solid background over the canvas grain.
const bannerBg core.Color = 235

// GameOptions configures a play screen.
type GameOptions struct {
	Config          core.RuntimeConfig
	Sensor          sensor.Options
	Recorder        session.Recorder // nil disables recording
	Sound           session.Feedback // nil plays no sound
	Preferences     model.UserPreferences
	SavePreferences func(model.UserPreferences) error // nil keeps changes in memory
	Logger          *log.Logger
	Now             func() time.Time
}

// Model is the Bubble Tea model of the play screen.
type Model struct {
	ctrl      *session.Controller
	sensors   *sensor.Simulator
	flash     *Flash
	noise     opensimplex.Noise
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      GameKeyMap
	help      help.Model
	savePrefs func(model.UserPreferences) error
	logger    *log.Logger
	now       func() time.Time
	start     time.Time
	seen      model.SensorState // Last reading taken from the update stream
	message   string
	quitting  bool
}

// NewModel creates the play screen and loads the first level.
func NewModel(opts GameOptions) (Model, error) {
	cfg := opts.Config
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.StartLevel < 1 {
		cfg.StartLevel = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Sensor.Initial == (model.SensorState{}) {
		opts.Sensor.Initial = model.DefaultSensorState()
	}

	sensors := sensor.NewSimulator(opts.Sensor)
	flash := NewFlash(DefaultFlashDuration, opts.Now)
	ctrl := session.NewController(session.Options{
		Levels:      puzzle.NewSeededGenerator(cfg.Seed),
		Sensors:     sensors,
		Recorder:    opts.Recorder,
		Haptic:      flash,
		Sound:       opts.Sound,
		Preferences: opts.Preferences,
		Logger:      opts.Logger,
		Now:         opts.Now,
	})

	m := Model{
		ctrl:      ctrl,
		sensors:   sensors,
		flash:     flash,
		noise:     opensimplex.NewNormalized(cfg.Seed),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keys:      DefaultGameKeyMap(),
		help:      help.New(),
		savePrefs: opts.SavePreferences,
		logger:    opts.Logger,
		now:       opts.Now,
		start:     opts.Now(),
		seen:      sensors.Snapshot(),
	}
	m.help.Width = cfg.ScreenW

	var first session.Event = session.StartNewGame{}
	if cfg.StartLevel > 1 {
		first = session.LoadLevel{Number: cfg.StartLevel}
	}
	if _, _, err := ctrl.Dispatch(first); err != nil {
		return m, fmt.Errorf("tui: cannot load level %d: %w", cfg.StartLevel, err)
	}
	m.logger.Info("game started", "seed", cfg.Seed, "level", cfg.StartLevel)
	return m, nil
}

// Controller exposes the session controller behind the screen.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		now := time.Time(msg)
		m.ctrl.SetAnimationProgress(m.config.AnimationProgress(now.Sub(m.start)))
		m.sensors.Tick(now)
		m.drainSensor()
		return m, tickCmd(m.config.FrameInterval())
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	state := m.ctrl.State()
	now := m.now()

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBrighter:
		m.sensors.Brighter()
	case core.ActionDimmer:
		m.sensors.Dimmer()
	case core.ActionRotateLeft:
		m.sensors.RotateLeft(now)
	case core.ActionRotateRight:
		m.sensors.RotateRight(now)
	case core.ActionToggleOrientation:
		m.sensors.ToggleOrientation()
	case core.ActionToggleSystemUI:
		m.sensors.ToggleSystemUI()
	case core.ActionToggleHeatmap:
		m.dispatch(session.ToggleHeatmap{})
	case core.ActionNextLevel:
		if state.IsLevelComplete {
			m.dispatch(session.NextLevel{})
		}
	case core.ActionRetry:
		m.dispatch(session.RetryLevel{})
	case core.ActionNewGame:
		m.dispatch(session.StartNewGame{})
	case core.ActionToggleContrast:
		prefs := m.ctrl.Preferences()
		prefs.HighContrastMode = !prefs.HighContrastMode
		m.setPreferences(prefs)
	case core.ActionToggleHints:
		prefs := m.ctrl.Preferences()
		prefs.ShowHints = !prefs.ShowHints
		m.setPreferences(prefs)
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	if action.IsSensor() {
		m.logger.Debug("sensor changed", "action", action, "sensor", m.sensors.Snapshot())
	}
	return m, nil
}

// handleMouse turns a left click on the canvas into a tap.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	x, y, ok := m.canvasRect().Normalize(msg.X, msg.Y-hudHeight)
	if !ok {
		return m, nil
	}
	m.dispatch(session.Tap{X: x, Y: y, Timestamp: m.now().UnixMilli()})
	return m, nil
}

// dispatch sends an event to the controller and updates the status message.
func (m *Model) dispatch(event session.Event) {
	state, outcome, err := m.ctrl.Dispatch(event)
	if err != nil {
		m.logger.Error("event failed", "event", event, "error", err)
		m.message = err.Error()
		return
	}

	switch outcome.Kind {
	case session.OutcomeHit:
		m.message = fmt.Sprintf("found %s  +%d", outcome.Tap.AnomalyFound.Type, outcome.Points)
		if state.IsLevelComplete {
			m.message = fmt.Sprintf("level %d complete", state.LevelNumber())
		}
	case session.OutcomeMiss:
		m.message = "nothing there"
		if state.IsGameOver {
			m.message = "game over"
		}
	case session.OutcomeLevelLoaded:
		m.message = fmt.Sprintf("level %d: find %d anomalies", state.LevelNumber(), len(state.CurrentLevel.Anomalies))
	case session.OutcomeHeatmapToggled:
		m.message = ""
	}
}

// drainSensor takes every reading published since the last frame and
// reports the newest change in the status line.
func (m *Model) drainSensor() {
	for {
		select {
		case reading := <-m.sensors.Updates():
			m.noteSensor(reading)
		default:
			return
		}
	}
}

func (m *Model) noteSensor(reading model.SensorState) {
	note := sensorNote(m.seen, reading)
	m.seen = reading
	if note == "" {
		return
	}
	// Level results stay on screen until the next level or retry
	if state := m.ctrl.State(); state.IsLevelComplete || state.IsGameOver {
		return
	}
	m.message = note
}

// sensorNote describes the most noticeable difference between two readings.
func sensorNote(prev, cur model.SensorState) string {
	switch {
	case cur.IsLandscape != prev.IsLandscape:
		if cur.IsLandscape {
			return "landscape"
		}
		return "portrait"
	case cur.IsSystemUIVisible != prev.IsSystemUIVisible:
		if cur.IsSystemUIVisible {
			return "status bar shown"
		}
		return "status bar hidden"
	case cur.Brightness != prev.Brightness:
		return fmt.Sprintf("brightness %d%%", int(math.Round(cur.Brightness*100)))
	case cur.IsRotating && (!prev.IsRotating || cur.RotationAngle != prev.RotationAngle):
		return fmt.Sprintf("tilting %.0f°", cur.RotationAngle)
	case prev.IsRotating && !cur.IsRotating:
		return "steady"
	}
	return ""
}

func (m *Model) setPreferences(p model.UserPreferences) {
	m.ctrl.SetPreferences(p)
	if m.savePrefs == nil {
		return
	}
	if err := m.savePrefs(p); err != nil {
		m.logger.Warn("could not save preferences", "error", err)
	}
}

// helpLines returns the height of the help view.
func (m Model) helpLines() int {
	if !m.help.ShowAll {
		return 1
	}
	lines := 0
	for _, col := range m.keys.FullHelp() {
		lines = max(lines, len(col))
	}
	return lines
}

// canvasRect returns the play area in screen coordinates.
func (m Model) canvasRect() core.Rect {
	h := max(m.config.ScreenH-hudHeight-m.helpLines(), 0)
	return core.NewRect(0, 0, m.config.ScreenW, h).Inset(1)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.ctrl.State()
	prefs := m.ctrl.Preferences()
	theme := ThemeFor(prefs.HighContrastMode)
	now := m.now()

	area := m.canvasRect()
	m.screen.Resize(m.config.ScreenW, area.H+2)
	m.screen.Clear()

	frameColor := theme.Frame
	if hit, ok := m.flash.Active(now); ok && !prefs.ReducedMotion {
		frameColor = theme.FlashMiss
		if hit {
			frameColor = theme.FlashHit
		}
	}
	m.screen.DrawBox(m.screen.Bounds(), frameColor)

	canvas{
		area:         area,
		state:        state,
		sensor:       m.ctrl.Sensor(),
		visibilities: m.ctrl.Visibilities(),
		progress:     m.ctrl.AnimationProgress(),
		prefs:        prefs,
		theme:        theme,
		noise:        m.noise,
	}.draw(m.screen)
	m.drawOverlay(state, area, theme)

	var b strings.Builder
	b.WriteString(m.renderHUD(state, prefs, theme))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(theme.HUDControls.Render(m.help.View(m.keys)))
	return b.String()
}

// renderHUD renders the status line above the canvas.
func (m Model) renderHUD(state model.GameState, prefs model.UserPreferences, theme Theme) string {
	sep := theme.HUDSeparator.Render(" │ ")
	parts := []string{theme.HUDTitle.Render("DEAD PIXEL")}

	if lvl := state.CurrentLevel; lvl != nil {
		parts = append(parts,
			theme.HUDValue.Render(fmt.Sprintf("Level %d %s", lvl.Number, lvl.Difficulty)),
			theme.HUDValue.Render(fmt.Sprintf("Score %d", state.Score)),
			theme.HUDValue.Render(fmt.Sprintf("Attempts %d/%d", state.AttemptsRemaining, lvl.MaxAttempts)),
			theme.HUDValue.Render(fmt.Sprintf("Found %d/%d", state.FoundCount(), len(lvl.Anomalies))),
		)
	}

	s := m.ctrl.Sensor()
	orientation := "portrait"
	if s.IsLandscape {
		orientation = "landscape"
	}
	parts = append(parts, theme.HUDControls.Render(fmt.Sprintf("☀ %d%% %s", int(s.Brightness*100+0.5), orientation)))

	if m.message != "" {
		parts = append(parts, theme.HUDValue.Render(m.message))
	}
	if prefs.ShowHints {
		if hint := nextHint(state); hint != "" {
			parts = append(parts, theme.HUDHint.Render(hint))
		}
	}

	line := strings.Join(parts, sep)
	return lipgloss.NewStyle().MaxWidth(max(m.config.ScreenW, 1)).Render(line)
}

// drawOverlay writes the level complete and game over banners.
func (m Model) drawOverlay(state model.GameState, area core.Rect, theme Theme) {
	if area.Empty() {
		return
	}
	_, cy := area.Center()

	switch {
	case state.IsLevelComplete:
		m.banner(cy, " LEVEL COMPLETE ", core.ColorBrightYellow)
		m.banner(cy+1, " [n] next level ", core.ColorBrightWhite)
	case state.IsGameOver:
		m.banner(cy, " GAME OVER ", theme.FlashMiss)
		m.banner(cy+1, fmt.Sprintf(" score %d  [r] retry  [N] new game ", state.Score), core.ColorBrightWhite)
	}
}

// banner draws centered text on a solid background.
func (m Model) banner(y int, text string, fg core.Color) {
	w := len([]rune(text))
	m.screen.FillRect(core.NewRect((m.screen.Width()-w)/2, y, w, 1), bannerBg)
	m.screen.DrawTextCentered(y, text, fg)
}

// Run starts the Bubble Tea program for a local play session.
func Run(opts GameOptions) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks are taps
	)

	_, err = p.Run()
	return err
}
