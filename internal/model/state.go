package model

import (
	"maps"
	"math"
)

// TapResult is the outcome of checking one tap against a level.
type TapResult struct {
	IsHit        bool
	Distance     float64  // Euclidean, normalized units; +Inf when nothing was in range
	AnomalyFound *Anomaly // nil on a miss
}

// TapData is one entry of the tap history used for the heatmap.
type TapData struct {
	X         float64
	Y         float64
	Timestamp int64 // Epoch milliseconds
	WasHit    bool
}

// DefaultAttempts is the attempt budget of a state that has no level loaded.
const DefaultAttempts = 3

// GameState is an immutable snapshot of a play session.
// Transitions build a new value with Clone rather than mutating a shared one.
//
// Invariants maintained by the session controller:
//   - IsLevelComplete iff len(FoundAnomalies) == len(CurrentLevel.Anomalies)
//   - IsGameOver iff AttemptsRemaining <= 0
type GameState struct {
	CurrentLevel      *Level
	Score             int
	AttemptsRemaining int
	FoundAnomalies    map[string]struct{}
	TapHistory        []TapData
	IsLevelComplete   bool
	IsGameOver        bool
	ShowHeatmap       bool
}

// NewGameState returns the state of a session before any level is loaded.
func NewGameState() GameState {
	return GameState{
		AttemptsRemaining: DefaultAttempts,
		FoundAnomalies:    make(map[string]struct{}),
	}
}

// IsFound reports whether the anomaly with the given id was already found.
func (s GameState) IsFound(id string) bool {
	_, ok := s.FoundAnomalies[id]
	return ok
}

// FoundCount returns the number of anomalies found on the current level.
func (s GameState) FoundCount() int {
	return len(s.FoundAnomalies)
}

// LevelNumber returns the number of the loaded level, or 0 if none.
func (s GameState) LevelNumber() int {
	if s.CurrentLevel == nil {
		return 0
	}
	return s.CurrentLevel.Number
}

// Clone returns a deep copy that shares no mutable storage with s.
// The level itself is immutable and is shared.
func (s GameState) Clone() GameState {
	c := s
	c.FoundAnomalies = make(map[string]struct{}, len(s.FoundAnomalies))
	maps.Copy(c.FoundAnomalies, s.FoundAnomalies)
	if s.TapHistory != nil {
		c.TapHistory = make([]TapData, len(s.TapHistory))
		copy(c.TapHistory, s.TapHistory)
	}
	return c
}

// SensorState is a snapshot of device sensor readings.
// It is owned by the sensor collaborator; the core only reads it.
type SensorState struct {
	Brightness        float64 // [0, 1]
	IsRotating        bool
	RotationAngle     float64 // Degrees
	IsLandscape       bool
	IsSystemUIVisible bool
	AccelerometerX    float64
	AccelerometerY    float64
	AccelerometerZ    float64
}

// DefaultSensorState is the reading used when no sensor data is available:
// mid-range brightness, portrait, not rotating, system UI visible.
func DefaultSensorState() SensorState {
	return SensorState{
		Brightness:        0.5,
		IsSystemUIVisible: true,
	}
}

// Sanitized returns s with a usable brightness: NaN and infinite readings
// fall back to the default, anything else is clamped to [0, 1].
func (s SensorState) Sanitized() SensorState {
	if math.IsNaN(s.Brightness) || math.IsInf(s.Brightness, 0) {
		s.Brightness = DefaultSensorState().Brightness
	}
	s.Brightness = math.Max(0, math.Min(1, s.Brightness))
	return s
}

// UserPreferences are accessibility and gameplay toggles.
type UserPreferences struct {
	HighContrastMode bool `yaml:"high_contrast_mode"`
	ReducedMotion    bool `yaml:"reduced_motion"`
	HapticFeedback   bool `yaml:"haptic_feedback"`
	SoundEffects     bool `yaml:"sound_effects"`
	ShowHints        bool `yaml:"show_hints"`
}

// DefaultUserPreferences returns the preferences of a fresh install.
func DefaultUserPreferences() UserPreferences {
	return UserPreferences{
		HapticFeedback: true,
		SoundEffects:   true,
	}
}
