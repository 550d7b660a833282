package experiment

import (
	"context"
	"math"
	"time"

	"github.com/san-kum/vortsim/internal/analysis"
	"github.com/san-kum/vortsim/internal/config"
	"github.com/san-kum/vortsim/internal/metrics"
	"github.com/san-kum/vortsim/pkg/vortex"
)

// Observer sees every recorded frame, frame 0 included. w is only valid for
// the duration of the call.
type Observer interface {
	OnFrame(d vortex.Diagnostics, w []float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(d vortex.Diagnostics, w []float64)

func (f ObserverFunc) OnFrame(d vortex.Diagnostics, w []float64) { f(d, w) }

type Result struct {
	History []vortex.Diagnostics
	// Field is the vorticity after the last completed frame, U and V the
	// velocity it was advected with.
	Field   []float64
	U, V    []float64
	Track   *analysis.Track
	Metrics map[string]float64
	Frames  int
	Elapsed time.Duration
	Errors  []error
}

// Experiment is one headless run of a configuration.
type Experiment struct {
	cfg       *config.Config
	metrics   []metrics.Metric
	observers []Observer
}

// New copies cfg. Without explicit metrics the standard set is recorded.
func New(cfg *config.Config, ms ...metrics.Metric) *Experiment {
	if len(ms) == 0 {
		ms = metrics.Standard()
	}
	return &Experiment{cfg: cfg.Clone(), metrics: ms}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Run steps the configured number of frames. A cancelled context stops the
// run between frames and returns the partial result with ctx.Err(). A frame
// that leaves non-finite vorticity ends the run early and is reported in
// Result.Errors.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	sim, err := e.cfg.NewSimulation()
	if err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	rec := metrics.NewRecorder()
	result := &Result{
		Track:   &analysis.Track{},
		Metrics: make(map[string]float64),
	}
	g := sim.Grid()
	field := sim.Snapshot()

	observe := func() vortex.Diagnostics {
		d := sim.Diagnostics()
		metrics.ObserveAll(e.metrics, d)
		rec.Observe(d)
		field = sim.SnapshotInto(field)
		result.Track.Record(d.Frame, g, field)
		for _, o := range e.observers {
			o.OnFrame(d, field)
		}
		return d
	}

	start := time.Now()
	observe()

	var runErr error
	for i := 0; i < e.cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		sim.Step(e.cfg.Dt)
		result.Frames++

		if d := observe(); !finite(d) {
			result.Errors = append(result.Errors, &FrameError{Frame: d.Frame, Wrapped: ErrUnstable})
			break
		}
	}

	result.Elapsed = time.Since(start)
	result.History = rec.History()
	result.Field = field
	result.U, result.V = sim.Velocity()
	result.Metrics = metrics.Summarize(e.metrics)
	return result, runErr
}

func finite(d vortex.Diagnostics) bool {
	for _, v := range []float64{d.Circulation, d.Enstrophy, d.Peak} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
