package tui

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/deadpixel/internal/core"
	"github.com/vovakirdan/deadpixel/internal/model"
)

// DefaultFlashDuration is how long the frame flashes after a tap.
const DefaultFlashDuration = 180 * time.Millisecond

// Flash stands in for haptic feedback: the canvas frame lights up
// briefly after each tap.
type Flash struct {
	mu       sync.Mutex
	until    time.Time
	hit      bool
	duration time.Duration
	now      func() time.Time
}

// NewFlash creates a flash of the given duration.
func NewFlash(d time.Duration, now func() time.Time) *Flash {
	if now == nil {
		now = time.Now
	}
	return &Flash{duration: d, now: now}
}

// Success flashes the hit color.
func (f *Flash) Success() { f.trigger(true) }

// Failure flashes the miss color.
func (f *Flash) Failure() { f.trigger(false) }

func (f *Flash) trigger(hit bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.until = f.now().Add(f.duration)
	f.hit = hit
}

// Active reports whether a flash is showing at now and whether it was a hit.
func (f *Flash) Active(now time.Time) (hit, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hit, now.Before(f.until)
}

// canvas draws one frame of the play area.
type canvas struct {
	area         core.Rect
	state        model.GameState
	sensor       model.SensorState
	visibilities []float64
	progress     float64
	prefs        model.UserPreferences
	theme        Theme
	noise        opensimplex.Noise
}

// background returns the gray level of a canvas cell.
func (c canvas) background(col, row int) float64 {
	level := c.theme.CanvasBase + c.theme.CanvasRange*c.sensor.Brightness
	if c.noise != nil && c.theme.GrainAmount > 0 {
		t := c.progress * 0.6
		if c.prefs.ReducedMotion {
			t = 0
		}
		level += c.theme.GrainAmount * c.noise.Eval3(float64(col)*0.18, float64(row)*0.35, t)
	}
	return core.ClampF(level, 0, 1)
}

func (c canvas) draw(s *core.Screen) {
	for row := c.area.Y; row < c.area.Bottom(); row++ {
		for col := c.area.X; col < c.area.Right(); col++ {
			s.SetCell(col, row, core.Cell{Rune: ' ', Fg: core.ColorDefault, Bg: core.Grayscale(c.background(col, row))})
		}
	}

	if lvl := c.state.CurrentLevel; lvl != nil {
		for i, a := range lvl.Anomalies {
			if c.state.IsFound(a.ID) {
				c.drawFound(s, a)
				continue
			}
			if i < len(c.visibilities) && c.visibilities[i] > 0 {
				c.drawAnomaly(s, a, c.visibilities[i])
			}
		}
	}

	if c.sensor.IsSystemUIVisible {
		c.drawStatusBar(s)
	}
	if c.state.ShowHeatmap {
		c.drawHeatmap(s)
	}
}

// shade blends the cell toward target by weight.
func (c canvas) shade(s *core.Screen, col, row int, target, weight float64) {
	if !c.area.Contains(col, row) {
		return
	}
	s.SetBg(col, row, core.Blend(c.background(col, row), target, weight))
}

func (c canvas) drawAnomaly(s *core.Screen, a model.Anomaly, visibility float64) {
	cx, cy := c.area.Denormalize(a.X, a.Y)
	rx, ry := c.area.CellRadius(a.Radius)

	switch a.Type {
	case model.PixelOffset:
		c.shade(s, cx+1, cy, c.theme.AnomalyDark, visibility)
	case model.TemporalFlicker:
		c.shade(s, cx, cy, c.theme.AnomalyBright, visibility)
	case model.PixelCluster:
		for dy := -ry; dy <= ry; dy++ {
			for dx := -rx; dx <= rx; dx++ {
				if (dx+dy)%2 == 0 && inEllipse(dx, dy, rx, ry) {
					c.shade(s, cx+dx, cy+dy, c.theme.AnomalyDark, visibility)
				}
			}
		}
	case model.SubtleGradient:
		for dy := -ry; dy <= ry; dy++ {
			for dx := -rx; dx <= rx; dx++ {
				d := ellipseDistance(dx, dy, rx, ry)
				if d <= 1 {
					c.shade(s, cx+dx, cy+dy, c.theme.AnomalyBright, visibility*0.5*(1-d))
				}
			}
		}
	case model.ColorShift:
		for dy := -ry; dy <= ry; dy++ {
			for dx := -rx; dx <= rx; dx++ {
				if inEllipse(dx, dy, rx, ry) {
					c.shade(s, cx+dx, cy+dy, c.theme.AnomalyBright, visibility*0.6)
				}
			}
		}
	case model.RotationReveal:
		for dx := -rx; dx <= rx; dx++ {
			c.shade(s, cx+dx, cy, c.theme.AnomalyBright, visibility)
		}
	case model.OrientationDependent:
		for dy := -ry; dy <= ry; dy++ {
			c.shade(s, cx, cy+dy, c.theme.AnomalyDark, visibility)
		}
	default:
		c.shade(s, cx, cy, c.theme.AnomalyDark, visibility)
	}
}

func (c canvas) drawFound(s *core.Screen, a model.Anomaly) {
	cx, cy := c.area.Denormalize(a.X, a.Y)
	s.Set(cx, cy, '◎')
	s.SetFg(cx, cy, c.theme.FoundMark)
}

func (c canvas) drawStatusBar(s *core.Screen) {
	row := c.area.Y
	for col := c.area.X; col < c.area.Right(); col++ {
		s.SetCell(col, row, core.Cell{Rune: ' ', Fg: c.theme.StatusText, Bg: c.theme.StatusBar})
	}
	left := "12:00"
	right := fmt.Sprintf("▮▮▮ %d%%", int(math.Round(c.sensor.Brightness*100)))
	for i, r := range []rune(left) {
		s.Set(c.area.X+1+i, row, r)
	}
	runes := []rune(right)
	for i, r := range runes {
		s.Set(c.area.Right()-1-len(runes)+i, row, r)
	}
}

func (c canvas) drawHeatmap(s *core.Screen) {
	for _, tap := range c.state.TapHistory {
		col, row := c.area.Denormalize(tap.X, tap.Y)
		if tap.WasHit {
			s.Set(col, row, '●')
			s.SetFg(col, row, c.theme.HeatHit)
		} else {
			s.Set(col, row, '×')
			s.SetFg(col, row, c.theme.HeatMiss)
		}
	}
}

// ellipseDistance is the normalized distance of (dx, dy) from the center
// of an ellipse with half-extents rx, ry; 1 is on the edge.
func ellipseDistance(dx, dy, rx, ry int) float64 {
	fx := float64(dx) / float64(max(rx, 1))
	fy := float64(dy) / float64(max(ry, 1))
	return math.Sqrt(fx*fx + fy*fy)
}

func inEllipse(dx, dy, rx, ry int) bool {
	return ellipseDistance(dx, dy, rx, ry) <= 1
}

// hintFor describes what reveals an anomaly.
func hintFor(cond model.VisibilityCondition) string {
	switch c := cond.(type) {
	case model.LowBrightness:
		return "try dimming the screen"
	case model.HighBrightness:
		return "try raising the brightness"
	case model.DuringRotation:
		return "something shows while tilting"
	case model.SpecificOrientation:
		if c.IsLandscape {
			return "try landscape"
		}
		return "try portrait"
	case model.AnimationPhase:
		return "watch for a flicker"
	case model.SystemUIHidden:
		return "hide the status bar"
	default:
		return "look closely"
	}
}

// nextHint returns the hint of the first anomaly not yet found.
func nextHint(state model.GameState) string {
	if state.CurrentLevel == nil || state.IsLevelComplete || state.IsGameOver {
		return ""
	}
	for _, a := range state.CurrentLevel.Anomalies {
		if !state.IsFound(a.ID) {
			return hintFor(a.Visibility)
		}
	}
	return ""
}
