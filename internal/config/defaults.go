package config

import (
	_ "embed"

	"github.com/vovakirdan/deadpixel/internal/model"
)

//go:embed defaults/deadpixel.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/deadpixel.yaml and is used if that file cannot be parsed.
func Default() Config {
	return Config{
		Game: GameConfig{
			StartLevel:        1,
			TickRate:          30,
			AnimationPeriodMS: 2000,
			Seed:              0,
		},
		Sensor: SensorConfig{
			Brightness:          0.5,
			BrightnessStep:      0.1,
			RotationStepDegrees: 15,
			RotationSettleMS:    400,
		},
		Preferences: model.DefaultUserPreferences(),
		Storage: StorageConfig{
			Path: "~/.deadpixel/deadpixel.db",
		},
		Server: ServerConfig{
			Address:            ":2222",
			HostKey:            ".ssh/deadpixel_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}
