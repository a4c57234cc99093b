// Package puzzle implements the game logic core: level generation,
// tap hit detection with scoring, and the visibility model.
// Everything here is pure and deterministic given the injected Random.
package puzzle

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/deadpixel/internal/model"
)

// Generation constants.
const (
	MinAnomalyMargin = 0.1  // Anomalies never spawn closer than this to an edge
	MaxAnomalyMargin = 0.9  // Upper bound for normalized coordinates
	BaseRadius       = 0.02 // Radius of an Expert anomaly
	MaxLevelBonus    = 2    // Cap on extra anomalies earned by level number
)

// ErrInvalidLevel is returned for level numbers below 1.
var ErrInvalidLevel = errors.New("puzzle: level number must be at least 1")

// Candidate anomaly types per difficulty tier.
var typePools = map[model.Difficulty][]model.AnomalyType{
	model.Easy: {
		model.PixelOffset,
		model.PixelCluster,
		model.SubtleGradient,
	},
	model.Normal: {
		model.PixelOffset,
		model.PixelCluster,
		model.SubtleGradient,
		model.ColorShift,
	},
	model.Hard: {
		model.TemporalFlicker,
		model.ColorShift,
		model.RotationReveal,
		model.SubtleGradient,
	},
	model.Expert: model.AllAnomalyTypes(),
}

// Generator builds levels from a level number and an injected Random.
// The same Random state always yields the same level.
type Generator struct {
	rng Random
}

// NewGenerator creates a generator drawing from rng.
// Panics if rng is nil; there is no fallback to global random state.
func NewGenerator(rng Random) *Generator {
	if rng == nil {
		panic("puzzle: NewGenerator requires a Random")
	}
	return &Generator{rng: rng}
}

// NewSeededGenerator is shorthand for NewGenerator(NewRandom(seed)).
func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(NewRandom(seed))
}

// GenerateLevel creates the level with the given number.
// Anomaly ids are "level{N}_anomaly{i}" with i counting from 1.
func (g *Generator) GenerateLevel(levelNumber int) (model.Level, error) {
	if levelNumber < 1 {
		return model.Level{}, fmt.Errorf("%w: got %d", ErrInvalidLevel, levelNumber)
	}

	difficulty := CalculateDifficulty(levelNumber)
	count := CalculateAnomalyCount(levelNumber, difficulty)
	maxAttempts := CalculateMaxAttempts(levelNumber, difficulty)

	anomalies := make([]model.Anomaly, 0, count)
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("level%d_anomaly%d", levelNumber, i)
		anomalies = append(anomalies, g.GenerateAnomaly(id, levelNumber, difficulty))
	}

	return model.Level{
		Number:      levelNumber,
		Anomalies:   anomalies,
		MaxAttempts: maxAttempts,
		Difficulty:  difficulty,
	}, nil
}

// GenerateAnomaly creates one anomaly.
// Random draws happen in a fixed order: type, condition, x, y, phase.
func (g *Generator) GenerateAnomaly(id string, levelNumber int, difficulty model.Difficulty) model.Anomaly {
	anomalyType := g.SelectAnomalyType(levelNumber, difficulty)
	condition := g.SelectVisibilityCondition(levelNumber, difficulty, anomalyType)
	radius := CalculateRadius(difficulty)

	span := MaxAnomalyMargin - MinAnomalyMargin
	return model.Anomaly{
		ID:             id,
		Type:           anomalyType,
		X:              g.rng.Float64()*span + MinAnomalyMargin,
		Y:              g.rng.Float64()*span + MinAnomalyMargin,
		Radius:         radius,
		Visibility:     condition,
		AnimationPhase: g.rng.Float64(),
	}
}

// SelectAnomalyType picks uniformly from the difficulty's type pool.
func (g *Generator) SelectAnomalyType(_ int, difficulty model.Difficulty) model.AnomalyType {
	pool, ok := typePools[difficulty]
	if !ok {
		pool = typePools[model.Expert]
	}
	return pool[g.rng.Intn(len(pool))]
}

// SelectVisibilityCondition picks the condition for an anomaly of the given type.
// Rotation, orientation and flicker types carry a fixed pairing; other
// types fall back to a difficulty-based choice.
func (g *Generator) SelectVisibilityCondition(_ int, difficulty model.Difficulty, anomalyType model.AnomalyType) model.VisibilityCondition {
	switch anomalyType {
	case model.RotationReveal:
		return model.DuringRotation{}
	case model.OrientationDependent:
		return model.SpecificOrientation{IsLandscape: randomBool(g.rng)}
	case model.TemporalFlicker:
		// Two independent draws. MinPhase < 0.3 <= MaxPhase always holds.
		minPhase := g.rng.Float64() * 0.3
		maxPhase := g.rng.Float64()*0.3 + 0.3
		return model.AnimationPhase{MinPhase: minPhase, MaxPhase: maxPhase}
	}

	switch difficulty {
	case model.Easy:
		return model.Always{}
	case model.Normal:
		if g.rng.Float64() > 0.5 {
			return model.Always{}
		}
		options := []model.VisibilityCondition{
			model.NewLowBrightness(),
			model.NewHighBrightness(),
		}
		return options[g.rng.Intn(len(options))]
	default:
		// The orientation is drawn while building the list, before the pick.
		options := []model.VisibilityCondition{
			model.LowBrightness{Threshold: 0.2},
			model.HighBrightness{Threshold: 0.8},
			model.DuringRotation{},
			model.SpecificOrientation{IsLandscape: randomBool(g.rng)},
			model.AnimationPhase{MinPhase: 0.2, MaxPhase: 0.4},
		}
		return options[g.rng.Intn(len(options))]
	}
}

// CalculateDifficulty maps a level number to its tier.
func CalculateDifficulty(levelNumber int) model.Difficulty {
	switch {
	case levelNumber <= 3:
		return model.Easy
	case levelNumber <= 7:
		return model.Normal
	case levelNumber <= 12:
		return model.Hard
	default:
		return model.Expert
	}
}

// CalculateAnomalyCount returns how many anomalies a level contains.
func CalculateAnomalyCount(levelNumber int, difficulty model.Difficulty) int {
	base := 1
	if difficulty >= model.Hard {
		base = 2
	}
	return base + min(levelNumber/5, MaxLevelBonus)
}

// CalculateMaxAttempts returns the miss budget for a level.
// The level number is accepted for future tuning but currently unused.
func CalculateMaxAttempts(_ int, difficulty model.Difficulty) int {
	switch difficulty {
	case model.Easy:
		return 5
	case model.Normal:
		return 4
	case model.Hard:
		return 3
	default:
		return 2
	}
}

// CalculateRadius returns the rendered radius; harder tiers are smaller.
func CalculateRadius(difficulty model.Difficulty) float64 {
	switch difficulty {
	case model.Easy:
		return BaseRadius * 2.0
	case model.Normal:
		return BaseRadius * 1.5
	case model.Hard:
		return BaseRadius * 1.2
	default:
		return BaseRadius
	}
}
