package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/vortsim/internal/analysis"
)

const (
	positiveStroke = "#e4572e"
	negativeStroke = "#2e86ab"
)

// TrackToSVG draws the positive and negative core paths of t on a size×size
// square spanning an n×n grid. Grid y grows downward, as in SVG. Empty
// tracks produce an empty string.
func TrackToSVG(t *analysis.Track, n, size int) string {
	if t == nil || t.Len() == 0 || n <= 0 || size <= 0 {
		return ""
	}
	scale := float64(size) / float64(n)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<rect x="0.5" y="0.5" width="%d" height="%d" fill="none" stroke="#444444"/>
`, size, size, size, size, size-1, size-1))

	writePath(&sb, t.Positive, scale, positiveStroke)
	writePath(&sb, t.Negative, scale, negativeStroke)

	sb.WriteString("</svg>")
	return sb.String()
}

func writePath(sb *strings.Builder, points []analysis.Point, scale float64, stroke string) {
	if len(points) == 0 {
		return
	}

	// Cell centres sit half a cell in from the edge.
	px := func(p analysis.Point) (float64, float64) {
		return (p.X + 0.5) * scale, (p.Y + 0.5) * scale
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i, p := range points {
		x, y := px(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	x, y := px(points[len(points)-1])
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, stroke))
}

// WriteTrackSVG writes TrackToSVG to path.
func WriteTrackSVG(path string, t *analysis.Track, n, size int) error {
	svg := TrackToSVG(t, n, size)
	if svg == "" {
		return fmt.Errorf("export: nothing to draw")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
