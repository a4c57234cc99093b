package model

import "fmt"

// Default thresholds for the brightness conditions.
const (
	DefaultLowBrightnessThreshold  = 0.3
	DefaultHighBrightnessThreshold = 0.7
)

// VisibilityCondition is the rule governing how strongly an anomaly is
// rendered given live sensor and animation context.
//
// The set of variants is closed: only types in this package implement it.
// Consumers switch over the concrete types below.
type VisibilityCondition interface {
	visibilityCondition()
	String() string
}

// Always is visible regardless of context.
type Always struct{}

// LowBrightness is more visible when screen brightness is at or below Threshold.
type LowBrightness struct {
	Threshold float64
}

// HighBrightness is more visible when screen brightness is at or above Threshold.
type HighBrightness struct {
	Threshold float64
}

// DuringRotation is visible while the device is rotating.
type DuringRotation struct{}

// SpecificOrientation is visible in one orientation only.
type SpecificOrientation struct {
	IsLandscape bool
}

// AnimationPhase is visible while the animation cycle is inside [MinPhase, MaxPhase].
// MinPhase > MaxPhase describes an empty window and is never satisfied.
type AnimationPhase struct {
	MinPhase float64
	MaxPhase float64
}

// SystemUIHidden is visible while the system UI is hidden.
type SystemUIHidden struct{}

func (Always) visibilityCondition()              {}
func (LowBrightness) visibilityCondition()       {}
func (HighBrightness) visibilityCondition()      {}
func (DuringRotation) visibilityCondition()      {}
func (SpecificOrientation) visibilityCondition() {}
func (AnimationPhase) visibilityCondition()      {}
func (SystemUIHidden) visibilityCondition()      {}

// NewLowBrightness returns a LowBrightness condition with the default threshold.
func NewLowBrightness() LowBrightness {
	return LowBrightness{Threshold: DefaultLowBrightnessThreshold}
}

// NewHighBrightness returns a HighBrightness condition with the default threshold.
func NewHighBrightness() HighBrightness {
	return HighBrightness{Threshold: DefaultHighBrightnessThreshold}
}

func (Always) String() string { return "Always" }

func (c LowBrightness) String() string {
	return fmt.Sprintf("LowBrightness(%.2f)", c.Threshold)
}

func (c HighBrightness) String() string {
	return fmt.Sprintf("HighBrightness(%.2f)", c.Threshold)
}

func (DuringRotation) String() string { return "DuringRotation" }

func (c SpecificOrientation) String() string {
	if c.IsLandscape {
		return "SpecificOrientation(landscape)"
	}
	return "SpecificOrientation(portrait)"
}

func (c AnimationPhase) String() string {
	return fmt.Sprintf("AnimationPhase(%.2f..%.2f)", c.MinPhase, c.MaxPhase)
}

func (SystemUIHidden) String() string { return "SystemUIHidden" }

// IsEmpty reports whether the phase window can never be satisfied.
func (c AnimationPhase) IsEmpty() bool {
	return c.MinPhase > c.MaxPhase
}
