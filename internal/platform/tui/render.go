package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// palette holds the ANSI 256 code of every cell color. Walls and floor
// sit on the grey ramp so characters and chests stand out on the map.
var palette = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorWall:          "94",
	core.ColorFloor:         "238",
	core.ColorHP:            "160",
	core.ColorMana:          "33",
}

var styles = func() map[core.Color]lipgloss.Style {
	m := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c, code := range palette {
		m[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return m
}()

// styleFor returns the style of c, plain for unknown colors.
func styleFor(c core.Color) lipgloss.Style {
	if st, ok := styles[c]; ok {
		return st
	}
	return styles[core.ColorDefault]
}

// RenderScreen converts the cell buffer into a styled string, one
// escape sequence per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		writeRow(&sb, s, y)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, s *core.Screen, y int) {
	var run strings.Builder
	color := s.GetCell(0, y).Color
	for x, w := 0, s.Width(); x < w; x++ {
		cell := s.GetCell(x, y)
		if cell.Color != color {
			sb.WriteString(styleFor(color).Render(run.String()))
			run.Reset()
			color = cell.Color
		}
		run.WriteRune(cell.Rune)
	}
	if run.Len() > 0 {
		sb.WriteString(styleFor(color).Render(run.String()))
	}
}
