package puzzle

import (
	"math"

	"github.com/vovakirdan/deadpixel/internal/model"
)

// HitToleranceMultiplier expands the tappable radius beyond the rendered one.
const HitToleranceMultiplier = 2.0

// Scoring constants.
const (
	MaxPenaltyDistance  = 0.1 // Distances beyond this cost no extra accuracy
	AccuracyPenaltyRate = 5.0
	MinMultiplier       = 0.5
)

// TapDetector resolves taps into hits or misses and scores hits.
// It has no state and never consults visibility: an anomaly is tappable
// whether or not it is currently rendered.
type TapDetector struct{}

// NewTapDetector returns a tap detector.
func NewTapDetector() TapDetector {
	return TapDetector{}
}

// CheckTap tests a normalized tap point against every anomaly not in found.
// Among anomalies within radius*HitToleranceMultiplier the closest wins;
// on an exact tie the earlier anomaly in generation order wins.
// With no candidate the result is a miss with Distance = +Inf.
func (TapDetector) CheckTap(tapX, tapY float64, anomalies []model.Anomaly, found map[string]struct{}) model.TapResult {
	closest := math.Inf(1)
	var hit *model.Anomaly

	for _, a := range anomalies {
		if _, ok := found[a.ID]; ok {
			continue
		}

		distance := CalculateDistance(tapX, tapY, a.X, a.Y)
		if distance <= a.Radius*HitToleranceMultiplier && distance < closest {
			closest = distance
			candidate := a
			hit = &candidate
		}
	}

	return model.TapResult{
		IsHit:        hit != nil,
		Distance:     closest,
		AnomalyFound: hit,
	}
}

// CalculateDistance returns the Euclidean distance between two points.
func CalculateDistance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// CalculateScore returns the points for finding an anomaly.
//
//	base(difficulty) * accuracy * attemptBonus, floored
//
// accuracy falls from 1.0 at distance 0 to 0.5 at MaxPenaltyDistance;
// attemptBonus ranges from 0.5 (no attempts left) to 1.0 (none used).
func CalculateScore(distance float64, attemptsRemaining, maxAttempts int, difficulty model.Difficulty) int {
	base := BaseScore(difficulty)

	accuracy := math.Max(MinMultiplier, 1.0-clampF(distance, 0, MaxPenaltyDistance)*AccuracyPenaltyRate)

	attemptBonus := 1.0
	if maxAttempts > 0 {
		attemptBonus = float64(attemptsRemaining)/float64(maxAttempts)*0.5 + 0.5
	}

	return int(math.Floor(float64(base) * accuracy * attemptBonus))
}

// BaseScore returns the points for a perfect find at the given difficulty.
func BaseScore(difficulty model.Difficulty) int {
	switch difficulty {
	case model.Easy:
		return 100
	case model.Normal:
		return 200
	case model.Hard:
		return 350
	default:
		return 500
	}
}

// CheckTap is a convenience wrapper around TapDetector.CheckTap.
func CheckTap(tapX, tapY float64, anomalies []model.Anomaly, found map[string]struct{}) model.TapResult {
	return TapDetector{}.CheckTap(tapX, tapY, anomalies, found)
}

// clampF restricts a float64 to [lo, hi]. NaN yields lo.
func clampF(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
