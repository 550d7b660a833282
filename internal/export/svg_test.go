package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/vortsim/internal/analysis"
)

func sampleTrack() *analysis.Track {
	return &analysis.Track{
		Frames:   []int{0, 1, 2},
		Positive: []analysis.Point{{X: 1.5, Y: 4.5}, {X: 2.5, Y: 4.5}, {X: 3.5, Y: 4.5}},
		Negative: []analysis.Point{{X: 7.5, Y: 4.5}, {X: 7.5, Y: 3.5}, {X: 7.5, Y: 2.5}},
	}
}

func TestTrackToSVG(t *testing.T) {
	svg := TrackToSVG(sampleTrack(), 10, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not a complete svg document:\n%s", svg)
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 end markers, got %d", got)
	}
	// (1.5 + 0.5) * 10 = 20, (4.5 + 0.5) * 10 = 50
	if !strings.Contains(svg, `d="M20.0,50.0 L30.0,50.0 L40.0,50.0"`) {
		t.Errorf("positive path not scaled as expected:\n%s", svg)
	}
	if !strings.Contains(svg, positiveStroke) || !strings.Contains(svg, negativeStroke) {
		t.Error("missing stroke colours")
	}
}

func TestTrackToSVGEmpty(t *testing.T) {
	tests := []struct {
		name  string
		track *analysis.Track
		n     int
		size  int
	}{
		{"nil track", nil, 10, 100},
		{"no frames", &analysis.Track{}, 10, 100},
		{"zero grid", sampleTrack(), 0, 100},
		{"zero size", sampleTrack(), 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrackToSVG(tt.track, tt.n, tt.size); got != "" {
				t.Errorf("expected empty output, got %q", got)
			}
		})
	}
}

func TestWriteTrackSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.svg")
	if err := WriteTrackSVG(path, sampleTrack(), 10, 100); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("file does not hold svg")
	}

	if err := WriteTrackSVG(path, nil, 10, 100); err == nil {
		t.Error("expected error for empty track")
	}
}
