package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/vortsim/pkg/vortex"
)

const halfBlock = "▀"

// Terminal draws w as cols×rows characters. Each character shows two
// vertically stacked samples: the upper half as foreground, the lower half
// as background, so the picture is cols wide and 2·rows samples tall.
func Terminal(g vortex.Grid, w []float64, p *Palette, s Scale, cols, rows int) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	norm := Normalize(w, s)
	sample := func(col, sub int) string {
		x := col * g.N / cols
		y := sub * g.N / (2 * rows)
		return p.Hex(p.Index(norm(w[g.Index(x, y)])))
	}

	styles := make(map[[2]string]lipgloss.Style)
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			key := [2]string{sample(col, 2*row), sample(col, 2*row+1)}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(key[0])).
					Background(lipgloss.Color(key[1]))
				styles[key] = st
			}
			sb.WriteString(st.Render(halfBlock))
		}
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// CellAt maps a character position inside a cols×rows Terminal view back to
// the grid cell under it.
func CellAt(n, cols, rows, col, row int) (x, y int) {
	return col * n / cols, row * n / rows
}
