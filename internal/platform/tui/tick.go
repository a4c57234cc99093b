// Package tui provides the Bubble Tea front-end for Dead Pixel Detective.
// It draws the canvas, turns mouse clicks into taps and keys into
// simulated sensor changes, and serves the same screens over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame to advance the animation clock.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
