package metrics

import (
	"testing"

	"github.com/san-kum/vortsim/pkg/vortex"
)

func TestRowRoundTrip(t *testing.T) {
	d := vortex.Diagnostics{Frame: 7, Circulation: 1, Enstrophy: 2, KineticEnergy: 3, Peak: 4, Variance: 5, MaxDivergence: 6, Residual: 7}

	row := Row(d)
	if len(row) != len(Columns) {
		t.Fatalf("row has %d values for %d columns", len(row), len(Columns))
	}
	back, err := FromRow(7, row)
	if err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("got %+v, want %+v", back, d)
	}

	if _, err := FromRow(0, row[:3]); err == nil {
		t.Error("expected error for a short row")
	}
}

func TestRecorderSeries(t *testing.T) {
	r := NewRecorder()
	if _, ok := r.Last(); ok {
		t.Error("expected no last frame on an empty recorder")
	}

	for i := 1; i <= 3; i++ {
		r.Observe(vortex.Diagnostics{Frame: i, Peak: float64(10 * i)})
	}

	peak, ok := r.Series("peak")
	if !ok {
		t.Fatal("peak series missing")
	}
	want := []float64{10, 20, 30}
	for i := range want {
		if peak[i] != want[i] {
			t.Errorf("peak[%d] = %g, want %g", i, peak[i], want[i])
		}
	}
	if _, ok := r.Series("temperature"); ok {
		t.Error("expected unknown series to be missing")
	}

	last, _ := r.Last()
	if last.Frame != 3 {
		t.Errorf("last frame = %d", last.Frame)
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("len after reset = %d", r.Len())
	}
}
