package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadpixel/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a menu, the game and the
scoreboard. Runs and records are stored per-server (all users share the
same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.deadpixel/host_key

Examples:
  deadpixel serve                           # Listen on the configured address
  deadpixel serve --ssh :2222               # Listen on port 2222
  deadpixel serve --host-key ./my_host_key  # Use specific host key
  deadpixel serve --db ./deadpixel.db       # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv := appConfig.Server
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		srv.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		srv.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		srv.IdleTimeoutMinutes = flagIdleTimeout
	}

	// Remote sizes come from each session's pty
	game := runtimeConfig(appConfig, 80, 24)

	cfg := tui.SSHServerConfig{
		Address:     srv.Address,
		HostKeyPath: srv.HostKey,
		DBPath:      appConfig.Storage.Path,
		IdleTimeout: time.Duration(srv.IdleTimeoutMinutes) * time.Minute,
		Game:        game,
		Sensor:      sensorOptions(appConfig),
		Preferences: appConfig.Preferences,
		Logger:      newLogger(os.Stderr, "deadpixel-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting deadpixel SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
