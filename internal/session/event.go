// Package session drives a play session: it feeds player events through
// pure state transitions and forwards their side effects (stats recording,
// haptic and sound feedback) to injected collaborators.
package session

import "fmt"

// Event is an input to the session state machine.
// The set of events is closed; only types in this package implement it.
type Event interface {
	sessionEvent()
	String() string
}

// StartNewGame resets the score and loads level 1.
type StartNewGame struct{}

// LoadLevel loads a specific level, keeping the current score.
type LoadLevel struct {
	Number int
}

// Tap is a player tap at normalized canvas coordinates.
type Tap struct {
	X, Y      float64
	Timestamp int64 // Epoch milliseconds
}

// NextLevel loads the level after the current one.
type NextLevel struct{}

// RetryLevel resets the score and reloads the current level.
type RetryLevel struct{}

// ToggleHeatmap flips the tap heatmap overlay.
type ToggleHeatmap struct{}

func (StartNewGame) sessionEvent()  {}
func (LoadLevel) sessionEvent()     {}
func (Tap) sessionEvent()           {}
func (NextLevel) sessionEvent()     {}
func (RetryLevel) sessionEvent()    {}
func (ToggleHeatmap) sessionEvent() {}

func (StartNewGame) String() string  { return "StartNewGame" }
func (e LoadLevel) String() string   { return fmt.Sprintf("LoadLevel(%d)", e.Number) }
func (e Tap) String() string         { return fmt.Sprintf("Tap(%.3f, %.3f)", e.X, e.Y) }
func (NextLevel) String() string     { return "NextLevel" }
func (RetryLevel) String() string    { return "RetryLevel" }
func (ToggleHeatmap) String() string { return "ToggleHeatmap" }
