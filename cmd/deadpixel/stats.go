package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagStatsReset bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show records and totals",
	Long: `Shows the best-ever records and totals over every finished run.

Examples:
  deadpixel stats
  deadpixel stats --reset`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsReset, "reset", false, "Reset the best-ever records (the run history is kept)")
}

func runStats(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagStatsReset {
		if err := store.ResetRecords(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Records reset.")
		return nil
	}

	rec, err := store.Records()
	if err != nil {
		return err
	}
	st, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Records")
	fmt.Fprintf(out, "  High score:       %s\n", humanize.Comma(int64(rec.HighScore)))
	fmt.Fprintf(out, "  Highest level:    %d\n", rec.HighestLevel)
	fmt.Fprintf(out, "  Anomalies found:  %s\n", humanize.Comma(int64(rec.TotalAnomaliesFound)))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Runs")
	if st.Runs == 0 {
		fmt.Fprintln(out, "  No runs recorded yet.")
		return nil
	}
	fmt.Fprintf(out, "  Finished:         %s\n", humanize.Comma(int64(st.Runs)))
	fmt.Fprintf(out, "  Best score:       %s\n", humanize.Comma(int64(st.BestScore)))
	fmt.Fprintf(out, "  Average score:    %s\n", humanize.CommafWithDigits(st.AvgScore, 1))
	fmt.Fprintf(out, "  Total score:      %s\n", humanize.Comma(st.TotalScore))
	fmt.Fprintf(out, "  Best level:       %d\n", st.BestLevel)
	fmt.Fprintf(out, "  Taps:             %s\n", humanize.Comma(st.TotalTaps))
	fmt.Fprintf(out, "  Last played:      %s\n", humanize.Time(st.LastPlayed))
	return nil
}
