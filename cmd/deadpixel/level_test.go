package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/deadpixel/internal/config"
	"github.com/vovakirdan/deadpixel/internal/model"
	"github.com/vovakirdan/deadpixel/internal/puzzle"
)

func TestLevelPreviewIsDeterministic(t *testing.T) {
	appConfig = config.Default()
	appConfig.Game.Seed = 42
	flagLevelCount = 2
	flagLevelMap = true
	t.Cleanup(func() {
		flagLevelCount = 1
		flagLevelMap = false
	})

	run := func() string {
		var buf bytes.Buffer
		levelCmd.SetOut(&buf)
		if err := runLevel(levelCmd, []string{"3"}); err != nil {
			t.Fatalf("runLevel: %v", err)
		}
		return buf.String()
	}

	first := run()
	if first != run() {
		t.Error("same seed printed different levels")
	}
	for _, want := range []string{"Level 3 (", "Level 4 (", "seed 42", "┌"} {
		if !strings.Contains(first, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestLevelPreviewRejectsBadNumbers(t *testing.T) {
	appConfig = config.Default()
	appConfig.Game.Seed = 1

	var buf bytes.Buffer
	levelCmd.SetOut(&buf)
	if err := runLevel(levelCmd, []string{"abc"}); err == nil {
		t.Error("non-numeric level accepted")
	}
	if err := runLevel(levelCmd, []string{"0"}); err == nil {
		t.Error("level 0 accepted")
	}
}

func TestPreviewMapPlacesEveryAnomaly(t *testing.T) {
	lvl, err := puzzle.NewSeededGenerator(7).GenerateLevel(12)
	if err != nil {
		t.Fatal(err)
	}
	s := previewMap(lvl)

	area := s.Bounds().Inset(1)
	for _, a := range lvl.Anomalies {
		col, row := area.Denormalize(a.X, a.Y)
		if got := s.Get(col, row); got == '·' {
			t.Errorf("anomaly %s not drawn at (%d,%d)", a.ID, col, row)
		}
	}

	// The frame surrounds a dotted field
	if s.Get(0, 0) != '┌' {
		t.Errorf("corner = %q, expected a box corner", s.Get(0, 0))
	}
	dots := strings.Count(s.String(), "·")
	if want := area.W*area.H - len(lvl.Anomalies); dots < want {
		t.Errorf("field has %d dots, expected at least %d", dots, want)
	}
}

func TestTypeGlyphsAreDistinct(t *testing.T) {
	seen := map[rune]model.AnomalyType{}
	for _, typ := range model.AllAnomalyTypes() {
		g := typeGlyph(typ)
		if prev, dup := seen[g]; dup {
			t.Errorf("%s and %s share glyph %q", prev, typ, g)
		}
		seen[g] = typ
	}
}
