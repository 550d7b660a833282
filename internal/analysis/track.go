package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/vortsim/pkg/vortex"
)

// Track records where the positive and negative vorticity sits each frame.
// Frames without vorticity of a sign repeat the previous position for it.
type Track struct {
	Frames   []int
	Positive []Point
	Negative []Point
}

// Record appends the centroids of w for frame.
func (t *Track) Record(frame int, g vortex.Grid, w []float64) {
	pos, ok := Centroid(g, w, 1)
	if !ok {
		pos = last(t.Positive)
	}
	neg, ok := Centroid(g, w, -1)
	if !ok {
		neg = last(t.Negative)
	}
	t.Frames = append(t.Frames, frame)
	t.Positive = append(t.Positive, pos)
	t.Negative = append(t.Negative, neg)
}

// Len is the number of recorded frames.
func (t *Track) Len() int { return len(t.Frames) }

// Displacement returns how far each centroid moved between the first and
// last recorded frame.
func (t *Track) Displacement() (pos, neg float64) {
	if len(t.Frames) < 2 {
		return 0, 0
	}
	n := len(t.Frames) - 1
	return t.Positive[n].Distance(t.Positive[0]), t.Negative[n].Distance(t.Negative[0])
}

// PathLength sums the per-frame steps of each centroid.
func (t *Track) PathLength() (pos, neg float64) {
	for i := 1; i < len(t.Frames); i++ {
		pos += t.Positive[i].Distance(t.Positive[i-1])
		neg += t.Negative[i].Distance(t.Negative[i-1])
	}
	return pos, neg
}

// TrackToASCII draws both paths on a width×height canvas spanning an n×n
// grid: '+' for the positive core, '-' for the negative one, '*' where they
// share a character cell. Row 0 of the canvas is y = 0.
func TrackToASCII(t *Track, n, width, height int) string {
	if t == nil || t.Len() == 0 || n <= 0 || width <= 0 || height <= 0 {
		return ""
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	plot := func(p Point, mark rune) {
		cx := int(math.Round(p.X / float64(n-1) * float64(width-1)))
		cy := int(math.Round(p.Y / float64(n-1) * float64(height-1)))
		if cx < 0 || cx >= width || cy < 0 || cy >= height {
			return
		}
		switch canvas[cy][cx] {
		case ' ', mark:
			canvas[cy][cx] = mark
		default:
			canvas[cy][cx] = '*'
		}
	}
	for i := range t.Frames {
		plot(t.Positive[i], '+')
		plot(t.Negative[i], '-')
	}

	var sb strings.Builder
	border := "+" + strings.Repeat("-", width) + "+\n"
	sb.WriteString(border)
	for _, row := range canvas {
		sb.WriteString("|")
		sb.WriteString(string(row))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

func last(ps []Point) Point {
	if len(ps) == 0 {
		return Point{}
	}
	return ps[len(ps)-1]
}
