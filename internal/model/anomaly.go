// Package model defines the immutable value types that describe a puzzle
// instance and the state of a play session.
// It has no dependencies on the platform layer so the game core stays pure.
package model

import "fmt"

// AnomalyType is the kind of visual irregularity an anomaly represents.
type AnomalyType uint8

const (
	PixelOffset          AnomalyType = iota // Single pixel offset from its expected position
	SubtleGradient                          // Barely visible gradient that shifts subtly
	TemporalFlicker                         // Pixel that flickers at specific intervals
	PixelCluster                            // Small cluster of misaligned pixels
	ColorShift                              // Color shift visible under certain brightness
	RotationReveal                          // Pattern that emerges during rotation
	OrientationDependent                    // Appears only in a specific orientation
)

// AllAnomalyTypes returns every anomaly type in declaration order.
func AllAnomalyTypes() []AnomalyType {
	return []AnomalyType{
		PixelOffset,
		SubtleGradient,
		TemporalFlicker,
		PixelCluster,
		ColorShift,
		RotationReveal,
		OrientationDependent,
	}
}

// String returns the human-readable name of the anomaly type.
func (t AnomalyType) String() string {
	switch t {
	case PixelOffset:
		return "PixelOffset"
	case SubtleGradient:
		return "SubtleGradient"
	case TemporalFlicker:
		return "TemporalFlicker"
	case PixelCluster:
		return "PixelCluster"
	case ColorShift:
		return "ColorShift"
	case RotationReveal:
		return "RotationReveal"
	case OrientationDependent:
		return "OrientationDependent"
	default:
		return fmt.Sprintf("AnomalyType(%d)", uint8(t))
	}
}

// Anomaly is a single findable irregularity on the canvas.
// X and Y are normalized canvas fractions (origin top-left, 1.0 = full size).
// Values are created once by the generator and never mutated.
type Anomaly struct {
	ID             string
	Type           AnomalyType
	X              float64
	Y              float64
	Radius         float64
	Visibility     VisibilityCondition
	AnimationPhase float64 // [0, 1)
}

// String renders a compact description, used by the level preview command.
func (a Anomaly) String() string {
	return fmt.Sprintf("%s %s at (%.3f, %.3f) r=%.3f when %s phase=%.2f",
		a.ID, a.Type, a.X, a.Y, a.Radius, a.Visibility, a.AnimationPhase)
}
