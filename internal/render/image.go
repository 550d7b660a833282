package render

import (
	"image"
	"math"

	"github.com/san-kum/vortsim/pkg/vortex"
)

// Image paints every cell of w as a cellSize×cellSize block. Row y of the
// grid becomes pixel rows y*cellSize and below.
func Image(g vortex.Grid, w []float64, p *Palette, s Scale, cellSize int) *image.Paletted {
	if cellSize < 1 {
		cellSize = 1
	}
	n := g.N
	img := image.NewPaletted(image.Rect(0, 0, n*cellSize, n*cellSize), p.Colors)
	norm := Normalize(w, s)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			idx := p.Index(norm(w[g.Index(x, y)]))
			for py := 0; py < cellSize; py++ {
				row := img.Pix[(y*cellSize+py)*img.Stride:]
				for px := 0; px < cellSize; px++ {
					row[x*cellSize+px] = idx
				}
			}
		}
	}
	return img
}

// DrawArrows overlays a velocity arrow every `every` cells, starting half a
// spacing in. Arrow length is proportional to speed, with the fastest
// sampled cell drawn `every` cells long.
func DrawArrows(img *image.Paletted, g vortex.Grid, u, v []float64, every, cellSize int) {
	if every < 1 || cellSize < 1 {
		return
	}
	maxSpeed := 0.0
	for y := every / 2; y < g.N; y += every {
		for x := every / 2; x < g.N; x += every {
			i := g.Index(x, y)
			maxSpeed = math.Max(maxSpeed, math.Hypot(u[i], v[i]))
		}
	}
	if !(maxSpeed > 0) || math.IsInf(maxSpeed, 0) {
		return
	}

	length := float64(every*cellSize) / maxSpeed
	for y := every / 2; y < g.N; y += every {
		for x := every / 2; x < g.N; x += every {
			i := g.Index(x, y)
			cx := float64(x*cellSize + cellSize/2)
			cy := float64(y*cellSize + cellSize/2)
			ex, ey := cx+u[i]*length, cy+v[i]*length
			drawLine(img, int(cx), int(cy), int(math.Round(ex)), int(math.Round(ey)))
			img.SetColorIndex(int(math.Round(ex)), int(math.Round(ey)), overlay)
		}
	}
}

// drawLine rasterises a segment with Bresenham's algorithm; pixels outside
// the image are dropped by SetColorIndex.
func drawLine(img *image.Paletted, x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		img.SetColorIndex(x0, y0, overlay)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
