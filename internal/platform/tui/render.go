package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ai2048/internal/core"
)

// palette maps core colors to terminal colors. Tile colors use the 256-color
// range so the progression from 2 to 2048 reads warm to bright.
var palette = map[core.Color]string{
	core.ColorRed:           "160",
	core.ColorGreen:         "71",
	core.ColorYellow:        "178",
	core.ColorBlue:          "33",
	core.ColorMagenta:       "170",
	core.ColorCyan:          "44",
	core.ColorWhite:         "252",
	core.ColorBrightRed:     "203",
	core.ColorBrightGreen:   "120",
	core.ColorBrightYellow:  "227",
	core.ColorBrightBlue:    "75",
	core.ColorBrightMagenta: "213",
	core.ColorBrightCyan:    "87",
	core.ColorBrightWhite:   "231",
	core.ColorOrange:        "208",
	core.ColorGray:          "242",
}

var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	}
	for c, code := range palette {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		if c == core.ColorBrightMagenta || c == core.ColorMagenta {
			style = style.Bold(true) // 2048 and beyond
		}
		styles[c] = style
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string.
// Adjacent cells of the same color are rendered as one run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		current := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current && run.Len() > 0 {
				sb.WriteString(styleFor(current).Render(run.String()))
				run.Reset()
			}
			current = cell.Color
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			sb.WriteString(styleFor(current).Render(run.String()))
			run.Reset()
		}
	}
	return sb.String()
}
