package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/deadpixel/internal/core"
)

// GameKeyMap holds the key bindings of the play screen.
type GameKeyMap struct {
	Brighter          key.Binding
	Dimmer            key.Binding
	RotateLeft        key.Binding
	RotateRight       key.Binding
	ToggleOrientation key.Binding
	ToggleSystemUI    key.Binding
	ToggleHeatmap     key.Binding
	NextLevel         key.Binding
	Retry             key.Binding
	NewGame           key.Binding
	ToggleContrast    key.Binding
	ToggleHints       key.Binding
	Help              key.Binding
	Quit              key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Brighter, k.Dimmer, k.RotateLeft, k.ToggleOrientation, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Brighter, k.Dimmer, k.ToggleSystemUI},
		{k.RotateLeft, k.RotateRight, k.ToggleOrientation},
		{k.ToggleHeatmap, k.NextLevel, k.Retry, k.NewGame},
		{k.ToggleContrast, k.ToggleHints, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns the default bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Brighter: key.NewBinding(
			key.WithKeys("+", "=", "up"),
			key.WithHelp("+/up", "brighter"),
		),
		Dimmer: key.NewBinding(
			key.WithKeys("-", "_", "down"),
			key.WithHelp("-/down", "dimmer"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("left", "tilt left"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("right", "tilt right"),
		),
		ToggleOrientation: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "landscape"),
		),
		ToggleSystemUI: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "status bar"),
		),
		ToggleHeatmap: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "heatmap"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n", "next level"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new game"),
		),
		ToggleContrast: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "contrast"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "hints"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Brighter):
		return core.ActionBrighter
	case key.Matches(msg, k.Dimmer):
		return core.ActionDimmer
	case key.Matches(msg, k.RotateLeft):
		return core.ActionRotateLeft
	case key.Matches(msg, k.RotateRight):
		return core.ActionRotateRight
	case key.Matches(msg, k.ToggleOrientation):
		return core.ActionToggleOrientation
	case key.Matches(msg, k.ToggleSystemUI):
		return core.ActionToggleSystemUI
	case key.Matches(msg, k.ToggleHeatmap):
		return core.ActionToggleHeatmap
	case key.Matches(msg, k.NextLevel):
		return core.ActionNextLevel
	case key.Matches(msg, k.Retry):
		return core.ActionRetry
	case key.Matches(msg, k.NewGame):
		return core.ActionNewGame
	case key.Matches(msg, k.ToggleContrast):
		return core.ActionToggleContrast
	case key.Matches(msg, k.ToggleHints):
		return core.ActionToggleHints
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}
