package session

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/deadpixel/internal/model"
)

// memoryRecorder records calls synchronously.
type memoryRecorder struct {
	mu            sync.Mutex
	highScores    []int
	highestLevels []int
	found         int
	runs          []Run
	err           error
}

func (m *memoryRecorder) RecordHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highScores = append(m.highScores, score)
	return m.err
}

func (m *memoryRecorder) RecordHighestLevel(level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highestLevels = append(m.highestLevels, level)
	return m.err
}

func (m *memoryRecorder) RecordAnomalyFound(count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.found += count
	return m.err
}

func (m *memoryRecorder) RecordRun(run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return m.err
}

type countingFeedback struct {
	mu       sync.Mutex
	success  int
	failures int
}

func (f *countingFeedback) Success() {
	f.mu.Lock()
	f.success++
	f.mu.Unlock()
}

func (f *countingFeedback) Failure() {
	f.mu.Lock()
	f.failures++
	f.mu.Unlock()
}

type fixedSensor model.SensorState

func (s fixedSensor) Snapshot() model.SensorState { return model.SensorState(s) }

func TestControllerRequiresLevels(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic without a level source")
		}
	}()
	NewController(Options{})
}

func TestControllerDispatchReturnsSnapshot(t *testing.T) {
	c := NewController(Options{Levels: fixedLevels{}})

	s, _, err := c.Dispatch(StartNewGame{})
	if err != nil {
		t.Fatal(err)
	}
	s.FoundAnomalies["a"] = struct{}{}
	s.Score = 1000

	current := c.State()
	if current.IsFound("a") || current.Score != 0 {
		t.Error("mutating a returned snapshot changed the controller state")
	}
}

func TestControllerRejectedEventKeepsState(t *testing.T) {
	c := NewController(Options{Levels: fixedLevels{}})
	c.Dispatch(StartNewGame{})

	s, _, err := c.Dispatch(LoadLevel{Number: -3})
	if err == nil {
		t.Fatal("expected an error")
	}
	if s.LevelNumber() != 1 || c.State().LevelNumber() != 1 {
		t.Error("rejected event changed the state")
	}
}

func TestControllerTapsAreAtomic(t *testing.T) {
	const taps = 200
	c := NewController(Options{Levels: fixedLevels{maxAttempts: 1000}})
	c.Dispatch(StartNewGame{})

	var wg sync.WaitGroup
	for i := 0; i < taps; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.TapAt(0.5, 0.5)
		}()
	}
	wg.Wait()

	s := c.State()
	if len(s.TapHistory) != taps {
		t.Errorf("tap history = %d, expected %d", len(s.TapHistory), taps)
	}
	if s.AttemptsRemaining != 1000-taps {
		t.Errorf("attempts = %d, expected %d", s.AttemptsRemaining, 1000-taps)
	}
}

func TestControllerRecordsStats(t *testing.T) {
	rec := &memoryRecorder{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewController(Options{
		Levels:   fixedLevels{},
		Recorder: rec,
		Now:      func() time.Time { return now },
	})

	c.Dispatch(StartNewGame{})
	c.TapAt(0.2, 0.2)
	c.Dispatch(NextLevel{})
	for i := 0; i < 3; i++ {
		c.TapAt(0.5, 0.5)
	}
	// Ignored after game over.
	c.TapAt(0.5, 0.5)

	if len(rec.highestLevels) != 2 || rec.highestLevels[0] != 1 || rec.highestLevels[1] != 2 {
		t.Errorf("highest levels = %v, expected [1 2]", rec.highestLevels)
	}
	if len(rec.highScores) != 1 || rec.highScores[0] != 200 {
		t.Errorf("high scores = %v, expected [200]", rec.highScores)
	}
	if rec.found != 1 {
		t.Errorf("anomalies found = %d, expected 1", rec.found)
	}
	if len(rec.runs) != 1 {
		t.Fatalf("runs = %d, expected exactly 1", len(rec.runs))
	}
	run := rec.runs[0]
	if run.ID == "" || run.Score != 200 || run.Level != 2 || run.Taps != 3 || !run.EndedAt.Equal(now) {
		t.Errorf("unexpected run %+v", run)
	}
}

func TestControllerRecorderErrorsDoNotFailDispatch(t *testing.T) {
	rec := &memoryRecorder{err: errors.New("disk full")}
	c := NewController(Options{Levels: fixedLevels{}, Recorder: rec})

	if _, _, err := c.Dispatch(StartNewGame{}); err != nil {
		t.Fatalf("dispatch failed because of the recorder: %v", err)
	}
	if _, outcome, err := c.TapAt(0.2, 0.2); err != nil || outcome.Kind != OutcomeHit {
		t.Fatalf("tap = %v, %v", outcome.Kind, err)
	}
}

func TestControllerFeedbackRespectsPreferences(t *testing.T) {
	tests := []struct {
		name        string
		prefs       model.UserPreferences
		hapticCalls int
		soundCalls  int
	}{
		{"both on", model.UserPreferences{HapticFeedback: true, SoundEffects: true}, 2, 2},
		{"haptic only", model.UserPreferences{HapticFeedback: true}, 2, 0},
		{"sound only", model.UserPreferences{SoundEffects: true}, 0, 2},
		{"both off", model.UserPreferences{}, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			haptic := &countingFeedback{}
			sound := &countingFeedback{}
			c := NewController(Options{
				Levels:      fixedLevels{},
				Haptic:      haptic,
				Sound:       sound,
				Preferences: tc.prefs,
			})

			c.Dispatch(StartNewGame{})
			c.TapAt(0.2, 0.2) // hit
			c.TapAt(0.5, 0.5) // miss

			if haptic.success+haptic.failures != tc.hapticCalls {
				t.Errorf("haptic calls = %d, expected %d", haptic.success+haptic.failures, tc.hapticCalls)
			}
			if sound.success+sound.failures != tc.soundCalls {
				t.Errorf("sound calls = %d, expected %d", sound.success+sound.failures, tc.soundCalls)
			}
			if tc.hapticCalls > 0 && (haptic.success != 1 || haptic.failures != 1) {
				t.Errorf("haptic success/failure = %d/%d, expected 1/1", haptic.success, haptic.failures)
			}
		})
	}
}

func TestControllerSetPreferences(t *testing.T) {
	sound := &countingFeedback{}
	c := NewController(Options{Levels: fixedLevels{}, Sound: sound})
	c.Dispatch(StartNewGame{})

	c.TapAt(0.5, 0.5)
	c.SetPreferences(model.UserPreferences{SoundEffects: true})
	c.TapAt(0.5, 0.5)

	if sound.failures != 1 {
		t.Errorf("sound failures = %d, expected 1", sound.failures)
	}
	if !c.Preferences().SoundEffects {
		t.Error("preferences not stored")
	}
}

func TestControllerVisibilities(t *testing.T) {
	c := NewController(Options{Levels: fixedLevels{}})
	if c.Visibilities() != nil {
		t.Error("expected nil visibilities without a level")
	}
	if c.Sensor() != model.DefaultSensorState() {
		t.Error("expected default sensor reading without a source")
	}

	c.Dispatch(StartNewGame{})
	vs := c.Visibilities()
	if len(vs) != 2 || vs[0] != 1.0 || vs[1] != 0.2 {
		t.Errorf("visibilities = %v, expected [1 0.2]", vs)
	}

	rotating := model.DefaultSensorState()
	rotating.IsRotating = true
	c = NewController(Options{Levels: fixedLevels{}, Sensors: fixedSensor(rotating)})
	c.Dispatch(StartNewGame{})
	if v := c.Visibility(c.State().CurrentLevel.Anomalies[1]); v != 1.0 {
		t.Errorf("rotation anomaly visibility while rotating = %f, expected 1", v)
	}
}

func TestControllerSanitizesSensorReadings(t *testing.T) {
	broken := model.DefaultSensorState()
	broken.Brightness = math.NaN()
	c := NewController(Options{Levels: fixedLevels{}, Sensors: fixedSensor(broken)})

	if got := c.Sensor().Brightness; got != model.DefaultSensorState().Brightness {
		t.Errorf("brightness = %f, expected the default", got)
	}

	c.Dispatch(StartNewGame{})
	for i, v := range c.Visibilities() {
		if math.IsNaN(v) || v < 0 || v > 1 {
			t.Errorf("visibility[%d] = %f, expected [0, 1]", i, v)
		}
	}
}

func TestControllerAnimationProgress(t *testing.T) {
	c := NewController(Options{Levels: fixedLevels{}})
	c.SetAnimationProgress(0.35)
	if c.AnimationProgress() != 0.35 {
		t.Errorf("progress = %f, expected 0.35", c.AnimationProgress())
	}

	flicker := model.Anomaly{Visibility: model.AnimationPhase{MinPhase: 0.3, MaxPhase: 0.4}}
	if v := c.Visibility(flicker); v != 1.0 {
		t.Errorf("in-phase visibility = %f, expected 1", v)
	}
	c.SetAnimationProgress(0.9)
	if v := c.Visibility(flicker); v != 0.1 {
		t.Errorf("out-of-phase visibility = %f, expected 0.1", v)
	}
}
