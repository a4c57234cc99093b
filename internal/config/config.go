// Package config provides YAML-based configuration loading for the game,
// the simulated sensors, persistence and the SSH server.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/deadpixel/internal/model"
)

// Config is the complete application configuration.
type Config struct {
	Game        GameConfig            `yaml:"game"`
	Sensor      SensorConfig          `yaml:"sensor"`
	Preferences model.UserPreferences `yaml:"preferences"` // Seeded into a fresh store
	Storage     StorageConfig         `yaml:"storage"`
	Server      ServerConfig          `yaml:"server"`
}

// GameConfig controls level progression and frame pacing.
type GameConfig struct {
	StartLevel        int   `yaml:"start_level"`
	TickRate          int   `yaml:"tick_rate"`           // Frames per second
	AnimationPeriodMS int   `yaml:"animation_period_ms"` // One full animation cycle
	Seed              int64 `yaml:"seed"`                // 0 picks a seed from the clock
}

// AnimationPeriod returns the animation cycle length.
func (g GameConfig) AnimationPeriod() time.Duration {
	return time.Duration(g.AnimationPeriodMS) * time.Millisecond
}

// SensorConfig controls the simulated sensors.
type SensorConfig struct {
	Brightness          float64 `yaml:"brightness"`            // Initial brightness, 0..1
	BrightnessStep      float64 `yaml:"brightness_step"`       // Per key press
	RotationStepDegrees float64 `yaml:"rotation_step_degrees"` // Per key press
	RotationSettleMS    int     `yaml:"rotation_settle_ms"`    // Quiet time before rotation stops
}

// RotationSettle returns the rotation settle window.
func (s SensorConfig) RotationSettle() time.Duration {
	return time.Duration(s.RotationSettleMS) * time.Millisecond
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"` // "~" expands to the home directory
}

// ServerConfig controls the SSH server.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the SSH idle timeout.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid value")

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field string, value any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, value))
		}
	}

	check(c.Game.StartLevel >= 1, "game.start_level", c.Game.StartLevel)
	check(c.Game.TickRate >= 1 && c.Game.TickRate <= 240, "game.tick_rate", c.Game.TickRate)
	check(c.Game.AnimationPeriodMS > 0, "game.animation_period_ms", c.Game.AnimationPeriodMS)
	check(c.Sensor.Brightness >= 0 && c.Sensor.Brightness <= 1, "sensor.brightness", c.Sensor.Brightness)
	check(c.Sensor.BrightnessStep > 0 && c.Sensor.BrightnessStep <= 1, "sensor.brightness_step", c.Sensor.BrightnessStep)
	check(c.Sensor.RotationStepDegrees > 0 && c.Sensor.RotationStepDegrees <= 180, "sensor.rotation_step_degrees", c.Sensor.RotationStepDegrees)
	check(c.Sensor.RotationSettleMS > 0, "sensor.rotation_settle_ms", c.Sensor.RotationSettleMS)
	check(c.Storage.Path != "", "storage.path", c.Storage.Path)
	check(c.Server.Address != "", "server.address", c.Server.Address)
	check(c.Server.IdleTimeoutMinutes >= 0, "server.idle_timeout_minutes", c.Server.IdleTimeoutMinutes)

	return errors.Join(errs...)
}
