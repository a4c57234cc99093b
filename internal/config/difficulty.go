package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/deadpixel/internal/model"
)

// ErrUnknownDifficulty is returned for a difficulty name that is not one
// of easy, normal, hard or expert.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// ParseDifficulty converts a case-insensitive tier name.
func ParseDifficulty(name string) (model.Difficulty, error) {
	d, ok := model.ParseDifficulty(name)
	if !ok {
		return model.Easy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
	return d, nil
}

// StartLevelFor returns the first level number of a difficulty tier.
// Starting there lets a player skip the easier tiers.
func StartLevelFor(d model.Difficulty) int {
	switch d {
	case model.Normal:
		return 4
	case model.Hard:
		return 8
	case model.Expert:
		return 13
	default:
		return 1
	}
}

// ApplyDifficulty moves the configured start level to the first level of
// the named tier. An empty name leaves the configuration unchanged.
func ApplyDifficulty(cfg *Config, name string) error {
	if name == "" {
		return nil
	}
	d, err := ParseDifficulty(name)
	if err != nil {
		return err
	}
	cfg.Game.StartLevel = StartLevelFor(d)
	return nil
}
