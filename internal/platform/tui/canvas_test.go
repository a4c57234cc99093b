package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/deadpixel/internal/core"
	"github.com/vovakirdan/deadpixel/internal/model"
)

func testLevel(anomalies ...model.Anomaly) *model.Level {
	return &model.Level{Number: 1, Anomalies: anomalies, MaxAttempts: 3, Difficulty: model.Easy}
}

func flatCanvas(state model.GameState, vis []float64) (canvas, *core.Screen) {
	theme := DefaultTheme()
	theme.GrainAmount = 0
	s := core.NewScreen(40, 20)
	return canvas{
		area:         s.Bounds(),
		state:        state,
		sensor:       model.SensorState{Brightness: 0.5},
		visibilities: vis,
		theme:        theme,
	}, s
}

func TestCanvasHiddenAnomalyNotDrawn(t *testing.T) {
	a := model.Anomaly{ID: "a", Type: model.ColorShift, X: 0.5, Y: 0.5, Radius: 0.1, Visibility: model.Always{}}
	state := model.NewGameState()
	state.CurrentLevel = testLevel(a)

	c, s := flatCanvas(state, []float64{0})
	c.draw(s)
	bg := s.GetCell(0, 0).Bg
	col, row := c.area.Denormalize(a.X, a.Y)
	if got := s.GetCell(col, row).Bg; got != bg {
		t.Errorf("hidden anomaly drawn: %v vs background %v", got, bg)
	}

	c, s = flatCanvas(state, []float64{1})
	c.draw(s)
	if got := s.GetCell(col, row).Bg; got == bg {
		t.Error("visible anomaly not drawn")
	}
}

func TestCanvasVisibilityScalesShade(t *testing.T) {
	a := model.Anomaly{ID: "a", Type: model.TemporalFlicker, X: 0.5, Y: 0.5, Radius: 0.05, Visibility: model.Always{}}
	state := model.NewGameState()
	state.CurrentLevel = testLevel(a)

	shadeAt := func(v float64) core.Color {
		c, s := flatCanvas(state, []float64{v})
		c.draw(s)
		col, row := c.area.Denormalize(a.X, a.Y)
		return s.GetCell(col, row).Bg
	}

	if faint, strong := shadeAt(0.2), shadeAt(1); faint >= strong {
		t.Errorf("bright anomaly at 0.2 = %d, at 1.0 = %d, expected brighter with visibility", faint, strong)
	}
}

func TestCanvasFoundMarkAndHeatmap(t *testing.T) {
	a := model.Anomaly{ID: "a", Type: model.PixelOffset, X: 0.25, Y: 0.5, Radius: 0.05, Visibility: model.Always{}}
	state := model.NewGameState()
	state.CurrentLevel = testLevel(a)
	state.FoundAnomalies["a"] = struct{}{}
	state.TapHistory = []model.TapData{
		{X: 0.25, Y: 0.5, WasHit: true},
		{X: 0.9, Y: 0.9, WasHit: false},
	}

	c, s := flatCanvas(state, []float64{1})
	c.draw(s)
	col, row := c.area.Denormalize(a.X, a.Y)
	if s.Get(col, row) != '◎' {
		t.Errorf("found mark = %q", s.Get(col, row))
	}

	state.ShowHeatmap = true
	c, s = flatCanvas(state, []float64{1})
	c.draw(s)
	if s.Get(col, row) != '●' {
		t.Errorf("heatmap hit = %q", s.Get(col, row))
	}
	mc, mr := c.area.Denormalize(0.9, 0.9)
	if s.Get(mc, mr) != '×' {
		t.Errorf("heatmap miss = %q", s.Get(mc, mr))
	}
}

func TestCanvasStatusBar(t *testing.T) {
	state := model.NewGameState()

	c, s := flatCanvas(state, nil)
	c.sensor.IsSystemUIVisible = true
	c.draw(s)
	if !strings.Contains(s.Row(0), "12:00") || !strings.Contains(s.Row(0), "50%") {
		t.Errorf("status bar row = %q", s.Row(0))
	}

	c, s = flatCanvas(state, nil)
	c.draw(s)
	if strings.Contains(s.Row(0), "12:00") {
		t.Error("status bar drawn while hidden")
	}
}

func TestCanvasBrightnessRaisesBackground(t *testing.T) {
	c, _ := flatCanvas(model.NewGameState(), nil)

	c.sensor.Brightness = 0
	dark := c.background(3, 3)
	c.sensor.Brightness = 1
	light := c.background(3, 3)
	if dark >= light {
		t.Errorf("background dark=%v light=%v", dark, light)
	}
}

func TestHints(t *testing.T) {
	tests := []struct {
		cond     model.VisibilityCondition
		expected string
	}{
		{model.Always{}, "look closely"},
		{nil, "look closely"},
		{model.NewLowBrightness(), "try dimming the screen"},
		{model.NewHighBrightness(), "try raising the brightness"},
		{model.DuringRotation{}, "something shows while tilting"},
		{model.SpecificOrientation{IsLandscape: true}, "try landscape"},
		{model.SpecificOrientation{IsLandscape: false}, "try portrait"},
		{model.AnimationPhase{MinPhase: 0.2, MaxPhase: 0.4}, "watch for a flicker"},
		{model.SystemUIHidden{}, "hide the status bar"},
	}

	for _, tt := range tests {
		if got := hintFor(tt.cond); got != tt.expected {
			t.Errorf("hintFor(%v) = %q, expected %q", tt.cond, got, tt.expected)
		}
	}
}

func TestNextHintSkipsFound(t *testing.T) {
	state := model.NewGameState()
	state.CurrentLevel = testLevel(
		model.Anomaly{ID: "a", Visibility: model.DuringRotation{}},
		model.Anomaly{ID: "b", Visibility: model.SystemUIHidden{}},
	)
	state.FoundAnomalies["a"] = struct{}{}

	if got := nextHint(state); got != "hide the status bar" {
		t.Errorf("nextHint = %q", got)
	}

	state.IsGameOver = true
	if got := nextHint(state); got != "" {
		t.Errorf("nextHint after game over = %q", got)
	}
}

func TestFlash(t *testing.T) {
	now := time.Unix(100, 0)
	f := NewFlash(100*time.Millisecond, func() time.Time { return now })

	if _, ok := f.Active(now); ok {
		t.Fatal("new flash should be idle")
	}

	f.Failure()
	if hit, ok := f.Active(now.Add(50 * time.Millisecond)); !ok || hit {
		t.Errorf("Active = %v, %v, expected a miss flash", hit, ok)
	}
	if _, ok := f.Active(now.Add(100 * time.Millisecond)); ok {
		t.Error("flash should end after its duration")
	}

	f.Success()
	if hit, _ := f.Active(now); !hit {
		t.Error("expected a hit flash")
	}
}

func TestRenderScreenPlainCells(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawText(0, 0, "abc", core.ColorDefault)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	if got := RenderScreen(s); got != "abc\nxyz" {
		t.Errorf("RenderScreen = %q", got)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 1)
	s.DrawText(0, 0, "dead", core.ColorRed)
	s.SetBg(5, 0, core.Grayscale(0.5))

	if got := RenderScreen(s); !strings.Contains(got, "dead") {
		t.Errorf("RenderScreen = %q", got)
	}
}
