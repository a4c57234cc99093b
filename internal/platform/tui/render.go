package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deadpixel/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style of a color pair.
func styleFor(p colorPair) lipgloss.Style {
	style := lipgloss.NewStyle()
	if !p.fg.IsDefault() {
		style = style.Foreground(lipgloss.Color(strconv.Itoa(int(p.fg))))
	}
	if !p.bg.IsDefault() {
		style = style.Background(lipgloss.Color(strconv.Itoa(int(p.bg))))
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := make(map[colorPair]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			pair := colorPair{cell.Fg, cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Fg, cell.Bg}) != pair {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if pair.fg.IsDefault() && pair.bg.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[pair]
			if !ok {
				style = styleFor(pair)
				styles[pair] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
