package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deadpixel/internal/config"
	"github.com/vovakirdan/deadpixel/internal/core"
	"github.com/vovakirdan/deadpixel/internal/model"
	"github.com/vovakirdan/deadpixel/internal/sensor"
	"github.com/vovakirdan/deadpixel/internal/storage"
)

// runtimeConfig converts the game section for a screen of the given size.
func runtimeConfig(cfg config.Config, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:         width,
		ScreenH:         height,
		TickRate:        cfg.Game.TickRate,
		Seed:            cfg.Game.Seed,
		StartLevel:      cfg.Game.StartLevel,
		AnimationPeriod: cfg.Game.AnimationPeriod(),
	}
}

// sensorOptions converts the sensor section.
func sensorOptions(cfg config.Config) sensor.Options {
	initial := model.DefaultSensorState()
	initial.Brightness = cfg.Sensor.Brightness

	opts := sensor.DefaultOptions()
	opts.Initial = initial
	opts.BrightnessStep = cfg.Sensor.BrightnessStep
	opts.RotationStep = cfg.Sensor.RotationStepDegrees
	opts.SettleWindow = cfg.Sensor.RotationSettle()
	return opts
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           appLogLevel,
	})
}

// openLogFile opens ~/.deadpixel/deadpixel.log for appending. The play
// screen owns the terminal, so logs go to a file.
func openLogFile() (*os.File, error) {
	dir := config.UserDir()
	if dir == "" {
		return nil, fmt.Errorf("cannot locate home directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "deadpixel.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// openStore opens the configured database.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", appConfig.Storage.Path, err)
	}
	return store, nil
}
