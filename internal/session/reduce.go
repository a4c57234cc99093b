package session

import (
	"fmt"

	"github.com/vovakirdan/deadpixel/internal/model"
	"github.com/vovakirdan/deadpixel/internal/puzzle"
)

// LevelSource produces levels by number. *puzzle.Generator implements it.
type LevelSource interface {
	GenerateLevel(levelNumber int) (model.Level, error)
}

// OutcomeKind classifies what a transition did.
type OutcomeKind uint8

const (
	OutcomeIgnored OutcomeKind = iota // Event had no effect on the state
	OutcomeLevelLoaded
	OutcomeHit
	OutcomeMiss
	OutcomeHeatmapToggled
)

// String returns the name of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "Ignored"
	case OutcomeLevelLoaded:
		return "LevelLoaded"
	case OutcomeHit:
		return "Hit"
	case OutcomeMiss:
		return "Miss"
	case OutcomeHeatmapToggled:
		return "HeatmapToggled"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", uint8(k))
	}
}

// Outcome describes the effect of one transition.
// Collaborators use it to decide on side effects without diffing states.
type Outcome struct {
	Kind          OutcomeKind
	Tap           model.TapResult // Set for OutcomeHit and OutcomeMiss
	Points        int             // Score gained by a hit
	Level         int             // Level number after the transition
	LevelComplete bool            // The transition completed the level
	GameOver      bool            // The transition ended the game
}

// Reduce computes the state that follows state after event.
// It never mutates state; the returned value shares no mutable storage
// with it. Apart from level generation it has no side effects.
//
// On error the input state is returned unchanged.
func Reduce(state model.GameState, event Event, levels LevelSource) (model.GameState, Outcome, error) {
	switch e := event.(type) {
	case StartNewGame:
		return loadLevel(model.NewGameState(), 1, levels)

	case LoadLevel:
		return loadLevel(state, e.Number, levels)

	case Tap:
		return tap(state, e)

	case NextLevel:
		return loadLevel(state, state.LevelNumber()+1, levels)

	case RetryLevel:
		reset := state.Clone()
		reset.Score = 0
		return loadLevel(reset, max(state.LevelNumber(), 1), levels)

	case ToggleHeatmap:
		next := state.Clone()
		next.ShowHeatmap = !state.ShowHeatmap
		return next, Outcome{Kind: OutcomeHeatmapToggled, Level: next.LevelNumber()}, nil

	default:
		return state, Outcome{Kind: OutcomeIgnored, Level: state.LevelNumber()},
			fmt.Errorf("session: unknown event %T", event)
	}
}

// loadLevel builds a fresh state for level n, carrying over the score.
func loadLevel(state model.GameState, n int, levels LevelSource) (model.GameState, Outcome, error) {
	level, err := levels.GenerateLevel(n)
	if err != nil {
		return state, Outcome{Kind: OutcomeIgnored, Level: state.LevelNumber()},
			fmt.Errorf("session: load level %d: %w", n, err)
	}

	next := model.NewGameState()
	next.CurrentLevel = &level
	next.Score = state.Score
	next.AttemptsRemaining = level.MaxAttempts

	return next, Outcome{Kind: OutcomeLevelLoaded, Level: level.Number}, nil
}

// tap resolves one tap. Taps are ignored with no level loaded and once the
// level is complete or the game is over.
func tap(state model.GameState, e Tap) (model.GameState, Outcome, error) {
	level := state.CurrentLevel
	if level == nil || state.IsLevelComplete || state.IsGameOver {
		return state, Outcome{Kind: OutcomeIgnored, Level: state.LevelNumber()}, nil
	}

	result := puzzle.CheckTap(e.X, e.Y, level.Anomalies, state.FoundAnomalies)
	record := model.TapData{X: e.X, Y: e.Y, Timestamp: e.Timestamp}
	next := state.Clone()

	if result.IsHit && result.AnomalyFound != nil {
		// Scored against the attempts left before this tap.
		points := puzzle.CalculateScore(result.Distance, state.AttemptsRemaining, level.MaxAttempts, level.Difficulty)

		record.WasHit = true
		next.Score += points
		next.FoundAnomalies[result.AnomalyFound.ID] = struct{}{}
		next.TapHistory = append(next.TapHistory, record)
		next.IsLevelComplete = len(next.FoundAnomalies) == len(level.Anomalies)

		return next, Outcome{
			Kind:          OutcomeHit,
			Tap:           result,
			Points:        points,
			Level:         level.Number,
			LevelComplete: next.IsLevelComplete,
		}, nil
	}

	next.AttemptsRemaining--
	next.TapHistory = append(next.TapHistory, record)
	next.IsGameOver = next.AttemptsRemaining <= 0
	next.ShowHeatmap = next.IsGameOver

	return next, Outcome{
		Kind:     OutcomeMiss,
		Tap:      result,
		Level:    level.Number,
		GameOver: next.IsGameOver,
	}, nil
}
