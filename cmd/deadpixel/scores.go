package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/deadpixel/internal/platform/tui"
	"github.com/vovakirdan/deadpixel/internal/storage"
)

var (
	flagScoresRecent bool
	flagScoresLimit  int
	flagScoresTUI    bool
	flagScoresRun    string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best and most recent runs",
	Long: `Display the top runs by score, or the most recent runs.

Examples:
  deadpixel scores
  deadpixel scores --recent --limit 5
  deadpixel scores --tui
  deadpixel scores --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  deadpixel scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show one run by its id")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (records are kept)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	switch {
	case flagScoresClear:
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Run history cleared.")
		return nil
	case flagScoresRun != "":
		run, err := store.RunByID(flagScoresRun)
		if err != nil {
			return err
		}
		printRun(out, run)
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(0); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err
	}

	var runs []storage.RunEntry
	title := "High Scores"
	if flagScoresRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagScoresLimit)
	} else {
		runs, err = store.TopRuns(flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'deadpixel play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-6s  %-14s  %s\n", "Rank", "Score", "Level", "Mode", "When", "Run")
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-6s  %-14s  %s\n", "----", "-----", "-----", "----", "----", "---")

	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-10s  %-5d  %-6s  %-14s  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.Level, r.Difficulty, humanize.Time(r.EndedAt()), r.RunID)
	}

	if hs, err := store.HighScore(); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %s\n", humanize.Comma(int64(hs)))
	}
	return nil
}

// printRun writes the details of one finished run.
func printRun(out io.Writer, r storage.RunEntry) {
	fmt.Fprintf(out, "Run %s\n", r.RunID)
	fmt.Fprintf(out, "  Score:            %s\n", humanize.Comma(int64(r.Score)))
	fmt.Fprintf(out, "  Level:            %d (%s)\n", r.Level, r.Difficulty)
	fmt.Fprintf(out, "  Anomalies found:  %d\n", r.AnomaliesFound)
	fmt.Fprintf(out, "  Taps:             %d\n", r.Taps)
	fmt.Fprintf(out, "  Ended:            %s (%s)\n", r.EndedAt().Format("2006-01-02 15:04"), humanize.Time(r.EndedAt()))
}
