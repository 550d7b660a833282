package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/vortsim/internal/config"
	"github.com/san-kum/vortsim/internal/experiment"
	"github.com/san-kum/vortsim/internal/storage"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run of a scenario. It starts from Preset, or from the
// config file at Config when set, then applies Boundary and Set in order.
type ScenarioStep struct {
	Preset   string             `yaml:"preset"`
	Config   string             `yaml:"config"`
	Boundary string             `yaml:"boundary"`
	Set      map[string]float64 `yaml:"set"`
	SaveAs   string             `yaml:"save_as"`
}

// StepResult pairs a finished step with the run id it was stored under, if
// any.
type StepResult struct {
	Name   string
	RunID  string
	Result *experiment.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Build resolves the step into a validated configuration.
func (s ScenarioStep) Build() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		name := s.Preset
		if name == "" {
			name = "single"
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", name)
		}
	}

	if s.Boundary != "" {
		cfg.Boundary = s.Boundary
	}

	// map order is random; apply in name order so errors are reproducible
	names := make([]string, 0, len(s.Set))
	for name := range s.Set {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := cfg.Set(name, s.Set[name]); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Name is how the step is reported and stored.
func (s ScenarioStep) Name() string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	case s.Config != "":
		return "config"
	}
	return "single"
}

// RunScenario executes all steps in order. When st is non-nil every step is
// stored. Progress lines go to out, which may be nil.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, out io.Writer) ([]StepResult, error) {
	if out == nil {
		out = io.Discard
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name()
		fmt.Fprintf(out, "running step %d/%d: %s\n", i+1, len(scenario.Steps), name)

		cfg, err := step.Build()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if st != nil {
			sr.RunID, err = st.Save(&storage.Run{
				Preset:  name,
				Config:  exp.Config(),
				History: result.History,
				Field:   result.Field,
				Metrics: result.Metrics,
			})
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs the base configuration across evenly spaced values of
// one parameter.
type ParameterSweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Steps int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	Value   float64
	Metrics map[string]float64
	Frames  int
	Stable  bool
}

// Values returns the parameter values the sweep visits.
func (s *ParameterSweep) Values() []float64 {
	if s.Steps <= 1 {
		return []float64{s.Min}
	}
	values := make([]float64, s.Steps)
	step := (s.Max - s.Min) / float64(s.Steps-1)
	for i := range values {
		values[i] = s.Min + float64(i)*step
	}
	values[len(values)-1] = s.Max
	return values
}

// RunSweep executes a parameter sweep, running the points concurrently.
func RunSweep(ctx context.Context, sweep *ParameterSweep, out io.Writer) ([]SweepResult, error) {
	if out == nil {
		out = io.Discard
	}
	if sweep.Base == nil {
		return nil, fmt.Errorf("sweep has no base configuration")
	}

	values := sweep.Values()
	cfgs := make([]*config.Config, len(values))
	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := cfg.Set(sweep.Param, v); err != nil {
			return nil, err
		}
		cfgs[i] = cfg
	}

	fmt.Fprintf(out, "sweeping %s over %d values\n", sweep.Param, len(values))
	runs, err := experiment.RunAll(ctx, cfgs)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		results[i] = SweepResult{
			Value:   values[i],
			Metrics: r.Metrics,
			Frames:  r.Frames,
			Stable:  stable(r),
		}
	}
	return results, nil
}

// MonteCarloConfig perturbs the vortex positions of Base. Jitter is the
// largest displacement per axis as a fraction of the domain.
type MonteCarloConfig struct {
	Base   *config.Config
	Jitter float64
	Trials int
	Seed   int64
}

// MonteCarloResult holds one trial
type MonteCarloResult struct {
	Trial    int
	Vortices []config.VortexConfig
	Metrics  map[string]float64
	Stable   bool
}

// RunMonteCarlo executes Trials runs with random vortex placements. Equal
// seeds give equal placements; seed 0 draws one from the clock.
func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, out io.Writer) ([]MonteCarloResult, error) {
	if out == nil {
		out = io.Discard
	}
	if mc.Base == nil {
		return nil, fmt.Errorf("monte carlo has no base configuration")
	}

	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	cfgs := make([]*config.Config, mc.Trials)
	for i := range cfgs {
		cfg := mc.Base.Clone()
		for j := range cfg.Vortices {
			v := &cfg.Vortices[j]
			v.X = clamp01(v.X + (rng.Float64()-0.5)*2*mc.Jitter)
			v.Y = clamp01(v.Y + (rng.Float64()-0.5)*2*mc.Jitter)
		}
		cfgs[i] = cfg
	}

	fmt.Fprintf(out, "monte carlo: %d trials\n", mc.Trials)
	runs, err := experiment.RunAll(ctx, cfgs)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		results[i] = MonteCarloResult{
			Trial:    i,
			Vortices: cfgs[i].Vortices,
			Metrics:  r.Metrics,
			Stable:   stable(r),
		}
	}
	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

func stable(r *experiment.Result) bool {
	return len(r.Errors) == 0 && r.Metrics["stability"] == 1
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
