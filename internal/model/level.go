package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the tier derived from a level number.
// Values are ordered: Easy < Normal < Hard < Expert.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
	Expert
)

// AllDifficulties returns every tier from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Normal, Hard, Expert}
}

// String returns the name of the difficulty tier.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	case Expert:
		return "Expert"
	default:
		return fmt.Sprintf("Difficulty(%d)", uint8(d))
	}
}

// ParseDifficulty converts a case-insensitive name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, true
	case "normal":
		return Normal, true
	case "hard":
		return Hard, true
	case "expert":
		return Expert, true
	default:
		return Easy, false
	}
}

// Level is one generated puzzle instance.
type Level struct {
	Number      int
	Anomalies   []Anomaly // Generation order, stable
	MaxAttempts int
	Difficulty  Difficulty

	// TimeLimit is reserved; the game logic never sets or reads it.
	TimeLimit *time.Duration
}

// AnomalyByID returns the anomaly with the given id.
func (l Level) AnomalyByID(id string) (Anomaly, bool) {
	for _, a := range l.Anomalies {
		if a.ID == id {
			return a, true
		}
	}
	return Anomaly{}, false
}
