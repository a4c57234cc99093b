// Package sensor simulates the device sensors a handheld would provide:
// screen brightness, rotation, orientation and system UI visibility.
// Readings are last-value-wins snapshots; the game reads whatever was
// delivered most recently.
package sensor

import (
	"math"
	"sync"
	"time"

	"github.com/vovakirdan/deadpixel/internal/model"
)

// StandardGravity is the accelerometer magnitude at rest, in m/s².
const StandardGravity = 9.81

// Options configures a Simulator.
type Options struct {
	Initial        model.SensorState
	BrightnessStep float64       // Used by Brighter and Dimmer
	RotationStep   float64       // Degrees, used by RotateLeft and RotateRight
	SettleWindow   time.Duration // Rotation stops reporting after this much quiet
	UpdateBuffer   int           // Capacity of the Updates channel
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Initial:        model.DefaultSensorState(),
		BrightnessStep: 0.1,
		RotationStep:   15,
		SettleWindow:   400 * time.Millisecond,
		UpdateBuffer:   8,
	}
}

// Simulator holds the latest sensor reading and publishes every change.
// Safe for concurrent use.
type Simulator struct {
	opts Options

	mu           sync.RWMutex
	state        model.SensorState
	lastRotation time.Time

	updates chan model.SensorState
}

// NewSimulator creates a simulator. Zero option fields take defaults.
func NewSimulator(opts Options) *Simulator {
	def := DefaultOptions()
	if opts.BrightnessStep <= 0 {
		opts.BrightnessStep = def.BrightnessStep
	}
	if opts.RotationStep <= 0 {
		opts.RotationStep = def.RotationStep
	}
	if opts.SettleWindow <= 0 {
		opts.SettleWindow = def.SettleWindow
	}
	if opts.UpdateBuffer < 1 {
		opts.UpdateBuffer = def.UpdateBuffer
	}

	return &Simulator{
		opts:    opts,
		state:   sanitize(opts.Initial),
		updates: make(chan model.SensorState, opts.UpdateBuffer),
	}
}

// Snapshot returns the latest reading.
func (s *Simulator) Snapshot() model.SensorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Updates returns a channel of readings, one per change. A slow reader
// misses intermediate readings but always receives the newest one.
func (s *Simulator) Updates() <-chan model.SensorState {
	return s.updates
}

// Set replaces the reading. Out-of-range brightness is clamped; a NaN
// brightness falls back to the default.
func (s *Simulator) Set(state model.SensorState) {
	s.update(func(st *model.SensorState) {
		*st = state
	})
}

// AdjustBrightness adds delta to the brightness, clamped to [0, 1].
func (s *Simulator) AdjustBrightness(delta float64) model.SensorState {
	return s.update(func(st *model.SensorState) {
		st.Brightness += delta
	})
}

// Brighter raises the brightness by one step.
func (s *Simulator) Brighter() model.SensorState {
	return s.AdjustBrightness(s.opts.BrightnessStep)
}

// Dimmer lowers the brightness by one step.
func (s *Simulator) Dimmer() model.SensorState {
	return s.AdjustBrightness(-s.opts.BrightnessStep)
}

// ToggleOrientation flips between portrait and landscape and snaps the
// rotation angle to match.
func (s *Simulator) ToggleOrientation() model.SensorState {
	return s.update(func(st *model.SensorState) {
		st.IsLandscape = !st.IsLandscape
		st.RotationAngle = 0
		if st.IsLandscape {
			st.RotationAngle = 90
		}
		setGravity(st)
	})
}

// ToggleSystemUI shows or hides the system UI.
func (s *Simulator) ToggleSystemUI() model.SensorState {
	return s.update(func(st *model.SensorState) {
		st.IsSystemUIVisible = !st.IsSystemUIVisible
	})
}

// Rotate turns the device by deltaDegrees. The device reports rotating
// until SettleWindow has passed without another call.
func (s *Simulator) Rotate(deltaDegrees float64, now time.Time) model.SensorState {
	return s.update(func(st *model.SensorState) {
		st.RotationAngle = NormalizeAngle(st.RotationAngle + deltaDegrees)
		st.IsRotating = deltaDegrees != 0
		st.IsLandscape = IsLandscapeAngle(st.RotationAngle)
		setGravity(st)
		s.lastRotation = now
	})
}

// RotateLeft rotates counter-clockwise by one step.
func (s *Simulator) RotateLeft(now time.Time) model.SensorState {
	return s.Rotate(-s.opts.RotationStep, now)
}

// RotateRight rotates clockwise by one step.
func (s *Simulator) RotateRight(now time.Time) model.SensorState {
	return s.Rotate(s.opts.RotationStep, now)
}

// Tick clears the rotating flag once the device has been still for the
// settle window. Reports whether the reading changed.
func (s *Simulator) Tick(now time.Time) bool {
	s.mu.Lock()
	if !s.state.IsRotating || now.Sub(s.lastRotation) < s.opts.SettleWindow {
		s.mu.Unlock()
		return false
	}
	s.state.IsRotating = false
	snapshot := s.state
	s.mu.Unlock()

	s.publish(snapshot)
	return true
}

func (s *Simulator) update(fn func(*model.SensorState)) model.SensorState {
	s.mu.Lock()
	fn(&s.state)
	s.state = sanitize(s.state)
	snapshot := s.state
	s.mu.Unlock()

	s.publish(snapshot)
	return snapshot
}

// publish delivers a reading without blocking, replacing the oldest
// undelivered one when the buffer is full.
func (s *Simulator) publish(state model.SensorState) {
	select {
	case s.updates <- state:
	default:
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- state:
		default:
		}
	}
}

func sanitize(st model.SensorState) model.SensorState {
	return st.Sanitized()
}

func setGravity(st *model.SensorState) {
	rad := st.RotationAngle * math.Pi / 180
	st.AccelerometerX = StandardGravity * math.Sin(rad)
	st.AccelerometerY = StandardGravity * math.Cos(rad)
	st.AccelerometerZ = 0
}

// NormalizeAngle wraps degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

// IsLandscapeAngle reports whether a device held at deg degrees is in
// landscape orientation.
func IsLandscapeAngle(deg float64) bool {
	a := math.Abs(NormalizeAngle(deg))
	return a > 45 && a < 135
}
