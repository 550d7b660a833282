package analysis

import (
	"math"

	"github.com/san-kum/vortsim/pkg/vortex"
)

// Point is a fractional cell position.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Centroid returns the centre of the cells where sign·ω > 0, weighted by
// sign·ω. It reports false when no cell carries vorticity of that sign.
func Centroid(g vortex.Grid, w []float64, sign float64) (Point, bool) {
	var sx, sy, mass float64
	for y := 0; y < g.N; y++ {
		for x := 0; x < g.N; x++ {
			a := w[g.Index(x, y)] * sign
			if a > 0 {
				sx += a * float64(x)
				sy += a * float64(y)
				mass += a
			}
		}
	}
	if mass == 0 {
		return Point{}, false
	}
	return Point{X: sx / mass, Y: sy / mass}, true
}
