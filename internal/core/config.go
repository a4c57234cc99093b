package core

import "time"

// RuntimeConfig carries what the renderer needs to run a session.
type RuntimeConfig struct {
	ScreenW         int           // Screen width in characters
	ScreenH         int           // Screen height in characters
	TickRate        int           // Frames per second
	Seed            int64         // Level generation seed, 0 picks one from the clock
	StartLevel      int           // First level of a new game
	AnimationPeriod time.Duration // Length of one animation cycle
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:         80,
		ScreenH:         24,
		TickRate:        30,
		StartLevel:      1,
		AnimationPeriod: 2 * time.Second,
	}
}

// FrameInterval returns the duration of one frame.
func (c RuntimeConfig) FrameInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// AnimationProgress converts elapsed time into animation cycles.
// The integer part counts completed cycles; the fraction is the phase.
func (c RuntimeConfig) AnimationProgress(elapsed time.Duration) float64 {
	if c.AnimationPeriod <= 0 {
		return 0
	}
	return float64(elapsed) / float64(c.AnimationPeriod)
}
