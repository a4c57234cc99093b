package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/deadpixel/internal/audio"
	"github.com/vovakirdan/deadpixel/internal/platform/tui"
	"github.com/vovakirdan/deadpixel/internal/session"
)

var (
	flagMute   bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game. Click on the canvas to tap where you see an anomaly.
Every miss costs an attempt; finding all anomalies completes the level.

Controls:
  Mouse click   - Tap
  +/- Up/Down   - Brighter / dimmer
  Left/Right    - Tilt the device
  O             - Portrait / landscape
  U             - Show / hide the status bar
  H             - Tap heatmap
  N / Enter     - Next level (after completing one)
  R             - Retry the level
  Shift+N       - New game
  C             - High contrast
  I             - Hints
  ?             - Help
  Q/Ctrl+C      - Quit

Logs are written to ~/.deadpixel/deadpixel.log.

Examples:
  deadpixel play
  deadpixel play --seed 42
  deadpixel play --difficulty expert --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound output")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume, 0..1")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The play screen owns the terminal
	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "deadpixel")

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.GameOptions{
		Config:      runtimeConfig(appConfig, width, height),
		Sensor:      sensorOptions(appConfig),
		Preferences: appConfig.Preferences,
		Logger:      logger,
	}

	// Persistence is optional; the game still works without it
	store, err := openStore()
	if err != nil {
		logger.Warn("playing without persistence", "error", err)
	} else {
		defer store.Close()

		if err := store.SeedPreferences(appConfig.Preferences); err != nil {
			logger.Warn("could not seed preferences", "error", err)
		}
		prefs, err := store.LoadPreferences()
		if err != nil {
			logger.Warn("using default preferences", "error", err)
		}
		opts.Preferences = prefs
		opts.SavePreferences = store.SavePreferences

		recorder := session.NewAsyncRecorder(store, session.DefaultRecordBuffer, logger)
		defer recorder.Close()
		opts.Recorder = recorder
	}

	if !flagMute {
		player := audio.NewPlayer(flagVolume, logger)
		if err := player.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer player.Close()
			opts.Sound = player
		}
	}

	logger.Info("starting play session", "config", appConfigSource, "level", opts.Config.StartLevel, "width", width, "height", height)
	return tui.Run(opts)
}
