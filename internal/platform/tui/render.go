package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// palette holds the ANSI 256 code for each core.Color. Empty means the
// terminal's default foreground.
var palette = [...]string{
	core.ColorDefault:       "",
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
	core.ColorGold:          "220",
	core.ColorIce:           "153",
	core.ColorToxic:         "118",
	core.ColorDim:           "238",
}

var cellStyles = buildCellStyles()

func buildCellStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(palette))
	for i, code := range palette {
		st := lipgloss.NewStyle()
		if code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		styles[i] = st
	}
	// Golden ledges stand out from the yellow HUD text
	styles[core.ColorGold] = styles[core.ColorGold].Bold(true)
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen turns a screen buffer into terminal output, one styled span
// per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()

	var sb strings.Builder
	sb.Grow(w*h*2 + h)
	run := make([]rune, 0, w)

	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < w; {
			color := s.GetCell(x, y).Color
			run = run[:0]
			for ; x < w; x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run = append(run, cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(string(run))
				continue
			}
			sb.WriteString(styleFor(color).Render(string(run)))
		}
	}
	return sb.String()
}
