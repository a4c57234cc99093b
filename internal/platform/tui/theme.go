package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deadpixel/internal/core"
)

// Theme contains the visual styles of the play screen.
type Theme struct {
	// Canvas gray levels in [0, 1]
	CanvasBase    float64 // Background at zero brightness
	CanvasRange   float64 // Added at full brightness
	GrainAmount   float64 // Noise amplitude, 0 disables grain
	AnomalyDark   float64 // Target level of dark anomalies
	AnomalyBright float64 // Target level of bright anomalies

	// Cell colors
	Frame      core.Color
	HeatHit    core.Color
	HeatMiss   core.Color
	FlashHit   core.Color
	FlashMiss  core.Color
	FoundMark  core.Color
	StatusBar  core.Color
	StatusText core.Color

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style
	HUDHint      lipgloss.Style

	// Overlay styles
	OverlayTitle lipgloss.Style
	OverlayText  lipgloss.Style
}

// DefaultTheme returns the default low-key grayscale theme.
func DefaultTheme() Theme {
	return Theme{
		CanvasBase:    0.12,
		CanvasRange:   0.45,
		GrainAmount:   0.05,
		AnomalyDark:   0.0,
		AnomalyBright: 1.0,

		Frame:      core.Color(240),
		HeatHit:    core.ColorGreen,
		HeatMiss:   core.ColorRed,
		FlashHit:   core.ColorBrightGreen,
		FlashMiss:  core.ColorBrightRed,
		FoundMark:  core.ColorBrightCyan,
		StatusBar:  core.Color(236),
		StatusText: core.Color(250),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDHint:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Italic(true),

		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	}
}

// HighContrastTheme returns a theme with a flat dark canvas and saturated
// overlays.
func HighContrastTheme() Theme {
	theme := DefaultTheme()
	theme.CanvasBase = 0.02
	theme.CanvasRange = 0.2
	theme.GrainAmount = 0
	theme.Frame = core.ColorBrightWhite
	theme.HeatHit = core.ColorBrightGreen
	theme.HeatMiss = core.ColorBrightRed
	theme.FoundMark = core.ColorBrightYellow
	theme.HUDValue = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	theme.HUDControls = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	return theme
}

// ThemeFor picks the theme matching the high contrast preference.
func ThemeFor(highContrast bool) Theme {
	if highContrast {
		return HighContrastTheme()
	}
	return DefaultTheme()
}
