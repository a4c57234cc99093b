package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadpixel/internal/core"
	"github.com/vovakirdan/deadpixel/internal/model"
	"github.com/vovakirdan/deadpixel/internal/puzzle"
)

var (
	flagLevelCount int
	flagLevelMap   bool
)

// Preview map size in cells.
const (
	previewW = 50
	previewH = 18
)

var levelCmd = &cobra.Command{
	Use:   "level <n>",
	Short: "Preview generated levels",
	Long: `Print the level a fresh game would start with for a given seed.
The same seed always produces the same level.

Examples:
  deadpixel level 1 --seed 42
  deadpixel level 8 --seed 42 --map
  deadpixel level 1 --count 5`,
	Args: cobra.ExactArgs(1),
	RunE: runLevel,
}

func init() {
	levelCmd.Flags().IntVar(&flagLevelCount, "count", 1, "Number of consecutive levels to preview")
	levelCmd.Flags().BoolVar(&flagLevelMap, "map", false, "Draw anomaly positions")
}

func runLevel(cmd *cobra.Command, args []string) error {
	first, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid level number %q", args[0])
	}

	seed := appConfig.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out := cmd.OutOrStdout()
	for n := first; n < first+max(flagLevelCount, 1); n++ {
		// Each preview is the first level of a new game
		lvl, err := puzzle.NewSeededGenerator(seed).GenerateLevel(n)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Level %d (%s)  seed %d\n", lvl.Number, lvl.Difficulty, seed)
		fmt.Fprintf(out, "Attempts: %d  Anomalies: %d\n\n", lvl.MaxAttempts, len(lvl.Anomalies))
		for _, a := range lvl.Anomalies {
			fmt.Fprintf(out, "  %s\n", a)
		}
		if flagLevelMap {
			fmt.Fprintln(out)
			fmt.Fprintln(out, previewMap(lvl).String())
		}
		fmt.Fprintln(out)
	}
	return nil
}

// previewMap draws each anomaly as the initial of its type.
func previewMap(lvl model.Level) *core.Screen {
	s := core.NewScreen(previewW, previewH)
	s.Fill('·', core.ColorDefault, core.ColorDefault)
	s.DrawBox(s.Bounds(), core.ColorDefault)
	area := s.Bounds().Inset(1)

	for _, a := range lvl.Anomalies {
		col, row := area.Denormalize(a.X, a.Y)
		s.Set(col, row, typeGlyph(a.Type))
	}
	return s
}

func typeGlyph(t model.AnomalyType) rune {
	switch t {
	case model.PixelOffset:
		return 'O'
	case model.SubtleGradient:
		return 'G'
	case model.TemporalFlicker:
		return 'F'
	case model.PixelCluster:
		return 'C'
	case model.ColorShift:
		return 'S'
	case model.RotationReveal:
		return 'R'
	case model.OrientationDependent:
		return 'L'
	default:
		return '?'
	}
}
