package render

import (
	"image/gif"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/vortsim/pkg/vortex"
)

func mustPalette(t *testing.T, name string) *Palette {
	t.Helper()
	p, err := NewPalette(name)
	if err != nil {
		t.Fatalf("NewPalette(%q): %v", name, err)
	}
	return p
}

func TestPalettes(t *testing.T) {
	for _, name := range PaletteNames() {
		p := mustPalette(t, name)
		if len(p.Colors) != 256 {
			t.Errorf("%s: %d colours, want 256", name, len(p.Colors))
		}
	}
	if _, err := NewPalette("sepia"); err == nil {
		t.Error("expected error for unknown palette")
	}
}

func TestPaletteIndex(t *testing.T) {
	p := mustPalette(t, "viridis")

	tests := []struct {
		t    float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{math.NaN(), 0},
		{0.5, 127},
		{1, 254},
		{7, 254},
	}
	for _, tt := range tests {
		if got := p.Index(tt.t); got != tt.want {
			t.Errorf("Index(%g) = %d, want %d", tt.t, got, tt.want)
		}
	}
	if h := p.Hex(overlay); h != "#ffffff" {
		t.Errorf("overlay colour = %s", h)
	}
}

func TestNormalize(t *testing.T) {
	f := []float64{-2, 0, 6}

	mm := Normalize(f, MinMax)
	if mm(-2) != 0 || mm(6) != 1 || mm(2) != 0.5 {
		t.Errorf("minmax: got %g %g %g", mm(-2), mm(2), mm(6))
	}

	sym := Normalize(f, Symmetric)
	if sym(0) != 0.5 || sym(6) != 1 || sym(-6) != 0 {
		t.Errorf("symmetric: got %g %g %g", sym(-6), sym(0), sym(6))
	}

	flat := Normalize([]float64{3, 3, 3}, MinMax)
	if flat(3) != 0.5 {
		t.Errorf("flat field maps to %g", flat(3))
	}
}

func TestParseScale(t *testing.T) {
	if s, err := ParseScale("symmetric"); err != nil || s != Symmetric {
		t.Errorf("got %v, %v", s, err)
	}
	if _, err := ParseScale("log"); err == nil {
		t.Error("expected error for unknown scale")
	}
}

func blob(t *testing.T, n int) (*vortex.Simulation, []float64) {
	t.Helper()
	s, err := vortex.New(n, 8e-4)
	if err != nil {
		t.Fatal(err)
	}
	s.Inject(n/2, n/2, 10)
	s.Step(0.8)
	return s, s.Snapshot()
}

func TestImage(t *testing.T) {
	s, w := blob(t, 32)
	p := mustPalette(t, "viridis")

	img := Image(s.Grid(), w, p, MinMax, 3)
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 96 {
		t.Fatalf("bounds = %v", b)
	}

	centre := img.ColorIndexAt(16*3+1, 16*3+1)
	corner := img.ColorIndexAt(0, 0)
	if centre <= corner {
		t.Errorf("centre index %d should exceed background %d", centre, corner)
	}

	u, v := s.Velocity()
	DrawArrows(img, s.Grid(), u, v, 8, 3)
	found := false
	for _, px := range img.Pix {
		if px == overlay {
			found = true
			break
		}
	}
	if !found {
		t.Error("no arrow pixels drawn")
	}
}

func TestDrawArrowsStillField(t *testing.T) {
	g, _ := vortex.NewGrid(16, vortex.Wall)
	w := make([]float64, g.Cells())
	img := Image(g, w, mustPalette(t, "rdbu"), Symmetric, 2)
	zero := make([]float64, g.Cells())

	DrawArrows(img, g, zero, zero, 4, 2)
	for _, px := range img.Pix {
		if px == overlay {
			t.Fatal("arrows drawn for a still field")
		}
	}
}

func TestWritePNG(t *testing.T) {
	s, w := blob(t, 16)
	path := filepath.Join(t.TempDir(), "field.png")
	if err := WritePNG(path, Image(s.Grid(), w, mustPalette(t, "magma"), MinMax, 2)); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
}

func TestGIFRecorder(t *testing.T) {
	s, _ := blob(t, 16)
	p := mustPalette(t, "inferno")
	rec := NewGIFRecorder(4)
	path := filepath.Join(t.TempDir(), "run.gif")

	if err := rec.Save(path); err != nil {
		t.Fatalf("empty save: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("empty recorder wrote a file")
	}

	for k := 0; k < 3; k++ {
		s.Step(0.8)
		rec.Add(Image(s.Grid(), s.Snapshot(), p, MinMax, 1))
	}
	if err := rec.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 3 || anim.Delay[0] != 4 {
		t.Errorf("got %d frames, delay %d", len(anim.Image), anim.Delay[0])
	}

	rec.Reset()
	if rec.Len() != 0 {
		t.Error("expected no frames after reset")
	}
}

func TestTerminal(t *testing.T) {
	s, w := blob(t, 32)
	out := Terminal(s.Grid(), w, mustPalette(t, "viridis"), MinMax, 20, 8)

	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
	if got := strings.Count(lines[0], halfBlock); got != 20 {
		t.Errorf("expected 20 blocks per line, got %d", got)
	}
	if Terminal(s.Grid(), w, mustPalette(t, "viridis"), MinMax, 0, 8) != "" {
		t.Error("expected empty output for zero columns")
	}
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		col, row int
		x, y     int
	}{
		{0, 0, 0, 0},
		{10, 4, 64, 64},
		{19, 7, 121, 112},
	}
	for _, tt := range tests {
		if x, y := CellAt(128, 20, 8, tt.col, tt.row); x != tt.x || y != tt.y {
			t.Errorf("CellAt(%d, %d) = (%d, %d), want (%d, %d)", tt.col, tt.row, x, y, tt.x, tt.y)
		}
	}
}
