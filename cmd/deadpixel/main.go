// deadpixel is a terminal "find the anomaly" puzzle: dead and stuck pixels
// hide on a canvas and only show under the right brightness, orientation,
// rotation or moment of the animation.
//
// Usage:
//
//	deadpixel play              - Play in the terminal (click to tap)
//	deadpixel level <n>         - Preview a generated level
//	deadpixel scores            - Show the best and most recent runs
//	deadpixel stats             - Show records and totals
//	deadpixel prefs list|get|set - Inspect or change preferences
//	deadpixel config            - Print the effective configuration
//	deadpixel serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>      - Configuration file
//	--seed <value>       - Level generation seed
//	--db <path>          - Database path (default: ~/.deadpixel/deadpixel.db)
//	--fps <rate>         - Frames per second
//	--difficulty <tier>  - Start at the first level of easy, normal, hard or expert
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadpixel/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagDBPath     string
	flagFPS        int
	flagDifficulty string
	flagLogLevel   string
)

// appConfig is the effective configuration, loaded before any command runs.
var (
	appConfig       config.Config
	appConfigSource string
	appLogLevel     log.Level
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deadpixel",
	Short: "Dead Pixel Detective - find the pixels that do not belong",
	Long: `Dead Pixel Detective hides anomalies on a canvas. Some show only when
the screen is dim or bright, while tilting, in landscape, with the status
bar hidden, or for a moment of the animation. Click where you see one.

Available commands:
  play     - Play in the terminal
  level    - Preview generated levels
  scores   - Best and most recent runs
  stats    - Records and totals
  prefs    - Preferences
  config   - Effective configuration
  serve    - Start SSH server for remote play

Examples:
  deadpixel play
  deadpixel play --difficulty hard
  deadpixel level 5 --seed 42
  deadpixel prefs set high_contrast_mode true
  deadpixel serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Level generation seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frames per second (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Start tier: easy, normal, hard, expert")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadAppConfig resolves the configuration and applies flag overrides.
func loadAppConfig(cmd *cobra.Command, _ []string) error {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("fps") {
		cfg.Game.TickRate = flagFPS
	}
	if err := config.ApplyDifficulty(&cfg, flagDifficulty); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	appConfig = cfg
	appConfigSource = source
	appLogLevel = level
	return nil
}
