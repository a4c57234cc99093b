package core

// Action is a semantic player intent, abstracted from physical keys.
type Action int

const (
	ActionNone              Action = iota
	ActionBrighter                 // Raise simulated screen brightness
	ActionDimmer                   // Lower simulated screen brightness
	ActionRotateLeft               // Tilt the device counter-clockwise
	ActionRotateRight              // Tilt the device clockwise
	ActionToggleOrientation        // Flip portrait/landscape
	ActionToggleSystemUI           // Show or hide the status bar
	ActionToggleHeatmap            // Show or hide the tap heatmap
	ActionNextLevel                // Advance after completing a level
	ActionRetry                    // Replay the current level from zero
	ActionNewGame                  // Start over from the first level
	ActionToggleContrast           // Switch the high contrast palette
	ActionToggleHints              // Show or hide visibility hints
	ActionHelp                     // Toggle the full key help
	ActionQuit                     // Leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionBrighter:
		return "Brighter"
	case ActionDimmer:
		return "Dimmer"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionToggleOrientation:
		return "ToggleOrientation"
	case ActionToggleSystemUI:
		return "ToggleSystemUI"
	case ActionToggleHeatmap:
		return "ToggleHeatmap"
	case ActionNextLevel:
		return "NextLevel"
	case ActionRetry:
		return "Retry"
	case ActionNewGame:
		return "NewGame"
	case ActionToggleContrast:
		return "ToggleContrast"
	case ActionToggleHints:
		return "ToggleHints"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsSensor reports whether the action changes the simulated sensors.
func (a Action) IsSensor() bool {
	switch a {
	case ActionBrighter, ActionDimmer, ActionRotateLeft, ActionRotateRight,
		ActionToggleOrientation, ActionToggleSystemUI:
		return true
	}
	return false
}
