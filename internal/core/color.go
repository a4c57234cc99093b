package core

import "math"

// Color is an ANSI 256-color palette index for a screen cell.
// ColorDefault leaves the terminal's own color in place.
type Color int16

// ColorDefault means no explicit color.
const ColorDefault Color = -1

// Named palette entries used by the HUD and overlays.
const (
	ColorRed          Color = 1
	ColorGreen        Color = 2
	ColorYellow       Color = 3
	ColorBlue         Color = 4
	ColorMagenta      Color = 5
	ColorCyan         Color = 6
	ColorWhite        Color = 7
	ColorBrightRed    Color = 9
	ColorBrightGreen  Color = 10
	ColorBrightYellow Color = 11
	ColorBrightCyan   Color = 14
	ColorBrightWhite  Color = 15
	ColorOrange       Color = 208
	ColorGray         Color = 245
)

// The 24-step grayscale ramp at the end of the 256-color palette.
const (
	grayRampStart Color = 232
	grayRampSteps       = 24
)

// IsDefault reports whether c leaves the terminal color unchanged.
func (c Color) IsDefault() bool {
	return c < 0
}

// Grayscale maps a level in [0, 1] onto the palette's gray ramp,
// 0 being near-black and 1 near-white. Out-of-range levels are clamped.
func Grayscale(level float64) Color {
	level = ClampF(level, 0, 1)
	step := int(math.Round(level * (grayRampSteps - 1)))
	return grayRampStart + Color(step)
}

// Blend moves a gray level toward target by weight in [0, 1] and returns
// the resulting palette entry. Used to fade anomalies into the background.
func Blend(background, target, weight float64) Color {
	weight = ClampF(weight, 0, 1)
	return Grayscale(background + (target-background)*weight)
}
