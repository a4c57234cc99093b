package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/deadpixel/internal/model"
	"github.com/vovakirdan/deadpixel/internal/puzzle"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"start level zero", func(c *Config) { c.Game.StartLevel = 0 }},
		{"tick rate zero", func(c *Config) { c.Game.TickRate = 0 }},
		{"tick rate huge", func(c *Config) { c.Game.TickRate = 1000 }},
		{"animation period", func(c *Config) { c.Game.AnimationPeriodMS = -1 }},
		{"brightness high", func(c *Config) { c.Sensor.Brightness = 1.5 }},
		{"brightness step", func(c *Config) { c.Sensor.BrightnessStep = 0 }},
		{"rotation step", func(c *Config) { c.Sensor.RotationStepDegrees = 200 }},
		{"settle", func(c *Config) { c.Sensor.RotationSettleMS = 0 }},
		{"storage path", func(c *Config) { c.Storage.Path = "" }},
		{"server address", func(c *Config) { c.Server.Address = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseMergesOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte("game:\n  seed: 42\nsensor:\n  brightness: 0.2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.Seed != 42 || cfg.Sensor.Brightness != 0.2 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Game.TickRate != Default().Game.TickRate || cfg.Storage.Path != Default().Storage.Path {
		t.Error("unspecified keys should keep their defaults")
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, err := Parse([]byte("game: [not, a, map")); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := Parse([]byte("game:\n  tick_rate: -3\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "game:\n  start_level: 5\npreferences:\n  sound_effects: false\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadWithSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Game.StartLevel != 5 || cfg.Preferences.SoundEffects {
		t.Errorf("custom values not loaded: %+v", cfg)
	}
	if !cfg.Preferences.HapticFeedback {
		t.Error("unspecified preference should keep its default")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("server:\n  address: \"\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, source, err := LoadWithSource("")
	if err != nil {
		t.Fatal(err)
	}
	if source != "embedded" {
		t.Errorf("source = %q, expected embedded", source)
	}
	if cfg != Default() {
		t.Errorf("embedded config differs from Default()")
	}
}

func TestLoadPrefersUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(filepath.Join("configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("game:\n  seed: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, _ := LoadWithSource("")
	if cfg.Game.Seed != 2 || source != filepath.Join("configs", FileName) {
		t.Errorf("local config not used: seed %d from %q", cfg.Game.Seed, source)
	}

	userDir := filepath.Join(home, ".deadpixel")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("game:\n  seed: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, _, _ = LoadWithSource("")
	if cfg.Game.Seed != 1 {
		t.Errorf("seed = %d, expected user config to win", cfg.Game.Seed)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Game.Seed = 77
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if back != cfg {
		t.Errorf("round trip mismatch:\n%+v\n%+v", back, cfg)
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	if cfg.Game.AnimationPeriod().Milliseconds() != 2000 {
		t.Error("AnimationPeriod mismatch")
	}
	if cfg.Sensor.RotationSettle().Milliseconds() != 400 {
		t.Error("RotationSettle mismatch")
	}
	if cfg.Server.IdleTimeout().Minutes() != 30 {
		t.Error("IdleTimeout mismatch")
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("Hard")
	if err != nil || d != model.Hard {
		t.Errorf("ParseDifficulty(Hard) = %v, %v", d, err)
	}
	if _, err := ParseDifficulty("insane"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestStartLevelForMatchesTiers(t *testing.T) {
	for _, d := range model.AllDifficulties() {
		n := StartLevelFor(d)
		if puzzle.CalculateDifficulty(n) != d {
			t.Errorf("StartLevelFor(%v) = %d which is %v", d, n, puzzle.CalculateDifficulty(n))
		}
		if n > 1 && puzzle.CalculateDifficulty(n-1) == d {
			t.Errorf("StartLevelFor(%v) = %d is not the first level of the tier", d, n)
		}
	}
}

func TestApplyDifficulty(t *testing.T) {
	cfg := Default()
	if err := ApplyDifficulty(&cfg, ""); err != nil || cfg.Game.StartLevel != 1 {
		t.Errorf("empty name changed config: %d, %v", cfg.Game.StartLevel, err)
	}
	if err := ApplyDifficulty(&cfg, "expert"); err != nil || cfg.Game.StartLevel != 13 {
		t.Errorf("expert start level = %d, %v", cfg.Game.StartLevel, err)
	}
	if err := ApplyDifficulty(&cfg, "nope"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.deadpixel/x.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".deadpixel", "x.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}
}
