package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/deadpixel/internal/model"
	"github.com/vovakirdan/deadpixel/internal/puzzle"
)

// SensorSource supplies the most recent sensor snapshot.
type SensorSource interface {
	Snapshot() model.SensorState
}

// Options configures a Controller. Only Levels is required.
type Options struct {
	Levels      LevelSource
	Sensors     SensorSource // nil reads model.DefaultSensorState
	Recorder    Recorder     // nil disables recording
	Haptic      Feedback
	Sound       Feedback
	Preferences model.UserPreferences
	Logger      *log.Logger
	Now         func() time.Time
}

// Controller owns the GameState of one play session.
// Every Dispatch is atomic: the state is read, the next state computed and
// stored under one lock, so concurrent taps never interleave.
// Side effects run after the lock is released.
type Controller struct {
	levels   LevelSource
	sensors  SensorSource
	recorder Recorder
	haptic   Feedback
	sound    Feedback
	logger   *log.Logger
	now      func() time.Time

	mu       sync.Mutex
	state    model.GameState
	prefs    model.UserPreferences
	progress float64
}

// NewController creates a controller with no level loaded.
// Panics if opts.Levels is nil.
func NewController(opts Options) *Controller {
	if opts.Levels == nil {
		panic("session: Options.Levels is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Controller{
		levels:   opts.Levels,
		sensors:  opts.Sensors,
		recorder: opts.Recorder,
		haptic:   opts.Haptic,
		sound:    opts.Sound,
		logger:   opts.Logger,
		now:      opts.Now,
		state:    model.NewGameState(),
		prefs:    opts.Preferences,
	}
}

// Dispatch applies event and returns a snapshot of the resulting state.
// On error the state is left unchanged.
func (c *Controller) Dispatch(event Event) (model.GameState, Outcome, error) {
	c.mu.Lock()
	next, outcome, err := Reduce(c.state, event, c.levels)
	if err != nil {
		snapshot := c.state.Clone()
		c.mu.Unlock()
		c.logger.Warn("event rejected", "event", event, "err", err)
		return snapshot, outcome, err
	}
	c.state = next
	prefs := c.prefs
	snapshot := next.Clone()
	c.mu.Unlock()

	c.logger.Debug("event applied", "event", event, "outcome", outcome.Kind, "score", snapshot.Score)
	c.applyEffects(snapshot, outcome, prefs)
	return snapshot, outcome, nil
}

// TapAt dispatches a tap stamped with the current time.
func (c *Controller) TapAt(x, y float64) (model.GameState, Outcome, error) {
	return c.Dispatch(Tap{X: x, Y: y, Timestamp: c.now().UnixMilli()})
}

// State returns a copy of the current state.
func (c *Controller) State() model.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Preferences returns the preferences consulted for feedback.
func (c *Controller) Preferences() model.UserPreferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs
}

// SetPreferences replaces the preferences consulted for feedback.
func (c *Controller) SetPreferences(p model.UserPreferences) {
	c.mu.Lock()
	c.prefs = p
	c.mu.Unlock()
}

// SetAnimationProgress stores the latest value of the animation clock.
func (c *Controller) SetAnimationProgress(progress float64) {
	c.mu.Lock()
	c.progress = progress
	c.mu.Unlock()
}

// AnimationProgress returns the latest value of the animation clock.
func (c *Controller) AnimationProgress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Sensor returns the latest sensor snapshot, or the default reading when
// no source is attached. Unusable brightness readings are sanitized.
func (c *Controller) Sensor() model.SensorState {
	if c.sensors == nil {
		return model.DefaultSensorState()
	}
	return c.sensors.Snapshot().Sanitized()
}

// Visibility returns the current opacity of one anomaly.
func (c *Controller) Visibility(anomaly model.Anomaly) float64 {
	return puzzle.VisibilityFor(anomaly.Visibility, c.Sensor(), c.AnimationProgress())
}

// Visibilities returns the current opacity of every anomaly of the loaded
// level, in generation order. Returns nil with no level loaded.
func (c *Controller) Visibilities() []float64 {
	c.mu.Lock()
	level := c.state.CurrentLevel
	progress := c.progress
	c.mu.Unlock()

	if level == nil {
		return nil
	}
	return puzzle.NewVisibilityCalculator().Visibilities(level.Anomalies, c.Sensor(), progress)
}

func (c *Controller) applyEffects(state model.GameState, outcome Outcome, prefs model.UserPreferences) {
	switch outcome.Kind {
	case OutcomeLevelLoaded:
		c.record("highest_level", func(r Recorder) error { return r.RecordHighestLevel(outcome.Level) })

	case OutcomeHit:
		c.record("high_score", func(r Recorder) error { return r.RecordHighScore(state.Score) })
		c.record("anomalies_found", func(r Recorder) error { return r.RecordAnomalyFound(1) })
		for _, f := range feedbackSinks(prefs, c.haptic, c.sound) {
			f.Success()
		}

	case OutcomeMiss:
		for _, f := range feedbackSinks(prefs, c.haptic, c.sound) {
			f.Failure()
		}
		if outcome.GameOver {
			run := Run{
				ID:             uuid.NewString(),
				Score:          state.Score,
				Level:          outcome.Level,
				AnomaliesFound: state.FoundCount(),
				Taps:           len(state.TapHistory),
				EndedAt:        c.now(),
			}
			if state.CurrentLevel != nil {
				run.Difficulty = state.CurrentLevel.Difficulty
			}
			c.logger.Info("game over", "run", run.ID, "score", run.Score, "level", run.Level)
			c.record("run", func(r Recorder) error { return r.RecordRun(run) })
		}
	}
}

func (c *Controller) record(name string, fn func(Recorder) error) {
	if c.recorder == nil {
		return
	}
	if err := fn(c.recorder); err != nil {
		c.logger.Error("record failed", "record", name, "err", err)
	}
}
