package puzzle

import (
	"fmt"
	"math"

	"github.com/vovakirdan/deadpixel/internal/model"
)

// Visibility levels for unmet conditions.
const (
	BrightnessFloor  = 0.3
	RotationHidden   = 0.2
	WrongOrientation = 0.15
	OutOfPhase       = 0.1
	SystemUIShown    = 0.25
	FullyVisible     = 1.0
)

// VisibilityCalculator maps an anomaly's condition and the live context
// to a draw opacity in [0, 1]. It is used by the renderer only.
type VisibilityCalculator struct{}

// NewVisibilityCalculator returns a visibility calculator.
func NewVisibilityCalculator() VisibilityCalculator {
	return VisibilityCalculator{}
}

// CalculateVisibility returns how visible the anomaly is right now.
// animationProgress is the cycling animation clock; only its fractional
// part matters.
func (VisibilityCalculator) CalculateVisibility(anomaly model.Anomaly, sensor model.SensorState, animationProgress float64) float64 {
	return VisibilityFor(anomaly.Visibility, sensor, animationProgress)
}

// Visibilities computes CalculateVisibility for each anomaly, in order.
func (c VisibilityCalculator) Visibilities(anomalies []model.Anomaly, sensor model.SensorState, animationProgress float64) []float64 {
	out := make([]float64, len(anomalies))
	for i, a := range anomalies {
		out[i] = c.CalculateVisibility(a, sensor, animationProgress)
	}
	return out
}

// VisibilityFor evaluates a single condition. A nil condition is treated
// as Always. A non-finite brightness reads as the default brightness.
// Panics on a condition type this package does not know about.
func VisibilityFor(condition model.VisibilityCondition, sensor model.SensorState, animationProgress float64) float64 {
	sensor = sensor.Sanitized()
	var v float64

	switch c := condition.(type) {
	case nil, model.Always:
		v = FullyVisible

	case model.LowBrightness:
		if sensor.Brightness <= c.Threshold {
			v = FullyVisible
		} else {
			v = clampF(c.Threshold/sensor.Brightness, BrightnessFloor, FullyVisible)
		}

	case model.HighBrightness:
		if sensor.Brightness >= c.Threshold {
			v = FullyVisible
		} else {
			v = clampF(sensor.Brightness/c.Threshold, BrightnessFloor, FullyVisible)
		}

	case model.DuringRotation:
		v = RotationHidden
		if sensor.IsRotating {
			v = FullyVisible
		}

	case model.SpecificOrientation:
		v = WrongOrientation
		if sensor.IsLandscape == c.IsLandscape {
			v = FullyVisible
		}

	case model.AnimationPhase:
		// A plain range check: a window with MinPhase > MaxPhase never matches.
		phase := NormalizePhase(animationProgress)
		v = OutOfPhase
		if phase >= c.MinPhase && phase <= c.MaxPhase {
			v = FullyVisible
		}

	case model.SystemUIHidden:
		v = SystemUIShown
		if !sensor.IsSystemUIVisible {
			v = FullyVisible
		}

	default:
		panic(fmt.Sprintf("puzzle: unhandled visibility condition %T", condition))
	}

	return clampF(v, 0, 1)
}

// NormalizePhase wraps an animation progress value into [0, 1).
// NaN and infinite inputs yield NaN, which matches no phase window.
func NormalizePhase(progress float64) float64 {
	phase := math.Mod(progress, 1.0)
	if phase < 0 {
		phase += 1.0
	}
	return phase
}
