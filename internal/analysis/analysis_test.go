package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/vortsim/pkg/vortex"
)

func grid(t *testing.T, n int) vortex.Grid {
	t.Helper()
	g, err := vortex.NewGrid(n, vortex.Wall)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCentroid(t *testing.T) {
	g := grid(t, 10)
	w := make([]float64, g.Cells())
	w[g.Index(2, 3)] = 1
	w[g.Index(4, 3)] = 3
	w[g.Index(7, 7)] = -2

	tests := []struct {
		name   string
		sign   float64
		want   Point
		wantOK bool
	}{
		{"positive", 1, Point{X: 3.5, Y: 3}, true},
		{"negative", -1, Point{X: 7, Y: 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Centroid(g, w, tt.sign)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v", ok)
			}
			if got.Distance(tt.want) > 1e-12 {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, ok := Centroid(g, make([]float64, g.Cells()), 1); ok {
		t.Error("expected no centroid for an empty field")
	}
}

func TestTrackFollowsInjectedBlob(t *testing.T) {
	s, err := vortex.New(48, 8e-4)
	if err != nil {
		t.Fatal(err)
	}
	s.Inject(20, 24, 10)

	var tr Track
	tr.Record(s.Frame(), s.Grid(), s.Snapshot())
	p := tr.Positive[0]
	if p.Distance(Point{X: 20, Y: 24}) > 1e-9 {
		t.Errorf("blob centroid at %+v, want (20, 24)", p)
	}
	// No negative vorticity yet: the position falls back to the origin.
	if tr.Negative[0] != (Point{}) {
		t.Errorf("negative centroid = %+v", tr.Negative[0])
	}
	if tr.Len() != 1 {
		t.Errorf("len = %d", tr.Len())
	}
}

func TestDisplacement(t *testing.T) {
	tr := &Track{
		Frames:   []int{0, 1, 2},
		Positive: []Point{{0, 0}, {3, 0}, {3, 4}},
		Negative: []Point{{5, 5}, {5, 5}, {5, 6}},
	}

	pos, neg := tr.Displacement()
	if math.Abs(pos-5) > 1e-12 || math.Abs(neg-1) > 1e-12 {
		t.Errorf("displacement = (%g, %g), want (5, 1)", pos, neg)
	}
	pos, neg = tr.PathLength()
	if math.Abs(pos-7) > 1e-12 || math.Abs(neg-1) > 1e-12 {
		t.Errorf("path length = (%g, %g), want (7, 1)", pos, neg)
	}

	var empty Track
	if p, n := empty.Displacement(); p != 0 || n != 0 {
		t.Error("expected zero displacement for an empty track")
	}
}

func TestTrackToASCII(t *testing.T) {
	tr := &Track{
		Frames:   []int{0, 1},
		Positive: []Point{{0, 0}, {9, 9}},
		Negative: []Point{{9, 0}, {9, 9}},
	}

	out := TrackToASCII(tr, 10, 10, 5)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if lines[1] != "|+        -|" {
		t.Errorf("first row = %q", lines[1])
	}
	if lines[5] != "|         *|" {
		t.Errorf("last row = %q", lines[5])
	}
	if TrackToASCII(nil, 10, 10, 5) != "" {
		t.Error("expected empty output for a nil track")
	}
}

func TestSpectrumParseval(t *testing.T) {
	g, err := vortex.NewGrid(24, vortex.Periodic)
	if err != nil {
		t.Fatal(err)
	}
	w := make([]float64, g.Cells())
	for i := range w {
		w[i] = math.Sin(float64(i)*0.37) + 0.2*math.Cos(float64(i*i)*0.11)
	}

	spec := Spectrum(g, w)
	total := 0.0
	for _, e := range spec {
		total += e
	}
	want := vortex.Enstrophy(g, w)
	if math.Abs(total-want) > 1e-9*want {
		t.Errorf("spectrum sums to %g, want %g", total, want)
	}
}

func TestSpectrumSingleMode(t *testing.T) {
	const n, mode = 16, 4
	g, err := vortex.NewGrid(n, vortex.Periodic)
	if err != nil {
		t.Fatal(err)
	}
	w := make([]float64, g.Cells())
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			w[y*n+x] = math.Cos(2 * math.Pi * mode * float64(x) / n)
		}
	}

	spec := Spectrum(g, w)
	if got := DominantWavenumber(spec); got != mode {
		t.Errorf("dominant wavenumber %d, want %d", got, mode)
	}
	// ½Σcos² = ½·n²/2
	if math.Abs(spec[mode]-64) > 1e-9 {
		t.Errorf("shell %d holds %g, want 64", mode, spec[mode])
	}
	for k, e := range spec {
		if k != mode && e > 1e-9 {
			t.Errorf("shell %d holds %g, want 0", k, e)
		}
	}
}

func TestSpectrumRejectsMismatch(t *testing.T) {
	g := grid(t, 8)
	if Spectrum(g, make([]float64, 10)) != nil {
		t.Error("expected nil for wrong field length")
	}
	if DominantWavenumber(nil) != 0 || DominantWavenumber([]float64{1, 0, 0}) != 0 {
		t.Error("expected 0 when no shell above the mean holds enstrophy")
	}
}
