package automation

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vortsim/internal/config"
	"github.com/san-kum/vortsim/internal/storage"
)

const scenarioYAML = `name: smoke
description: two short runs
steps:
  - preset: single
    set:
      resolution: 24
      frames: 2
  - preset: pair
    boundary: periodic
    save_as: pair-periodic
    set:
      resolution: 24
      frames: 3
      viscosity: 0.002
`

func smallBase() *config.Config {
	cfg := config.GetPreset("pair")
	cfg.Resolution = 24
	cfg.Frames = 2
	return cfg
}

var _ = Describe("Scenario", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "scenario.yaml")
		Expect(os.WriteFile(path, []byte(scenarioYAML), 0644)).To(Succeed())
	})

	It("loads steps from yaml", func() {
		sc, err := LoadScenario(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Name).To(Equal("smoke"))
		Expect(sc.Steps).To(HaveLen(2))
		Expect(sc.Steps[1].Set).To(HaveKeyWithValue("viscosity", 0.002))
		Expect(sc.Steps[1].Name()).To(Equal("pair-periodic"))
		Expect(sc.Steps[0].Name()).To(Equal("single"))
	})

	It("builds configurations with overrides applied", func() {
		sc, err := LoadScenario(path)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := sc.Steps[1].Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Resolution).To(Equal(24))
		Expect(cfg.Boundary).To(Equal("periodic"))
		Expect(cfg.Viscosity).To(Equal(0.002))
		Expect(cfg.Vortices).To(HaveLen(2))
	})

	It("rejects unknown presets and parameters", func() {
		_, err := ScenarioStep{Preset: "tornado"}.Build()
		Expect(err).To(HaveOccurred())

		_, err = ScenarioStep{Preset: "single", Set: map[string]float64{"gravity": 9.8}}.Build()
		Expect(err).To(MatchError(config.ErrUnknownParam))

		_, err = ScenarioStep{Preset: "single", Set: map[string]float64{"resolution": 2}}.Build()
		Expect(err).To(MatchError(config.ErrInvalid))
	})

	It("runs and stores every step", func() {
		sc, err := LoadScenario(path)
		Expect(err).NotTo(HaveOccurred())

		st := storage.New(GinkgoT().TempDir())
		Expect(st.Init()).To(Succeed())

		results, err := RunScenario(context.Background(), sc, st, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))
		Expect(results[0].Result.Frames).To(Equal(2))
		Expect(results[1].Result.Frames).To(Equal(3))
		Expect(results[1].RunID).NotTo(BeEmpty())

		runs, err := st.List()
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(2))
	})

	It("runs without a store", func() {
		sc := &Scenario{Steps: []ScenarioStep{{Preset: "single", Set: map[string]float64{"resolution": 16, "frames": 1}}}}
		results, err := RunScenario(context.Background(), sc, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(1))
		Expect(results[0].RunID).To(BeEmpty())
	})
})

var _ = Describe("ParameterSweep", func() {
	It("spaces values evenly and ends on Max", func() {
		sw := &ParameterSweep{Min: 0.001, Max: 0.003, Steps: 3}
		values := sw.Values()
		Expect(values).To(HaveLen(3))
		Expect(values[0]).To(Equal(0.001))
		Expect(values[1]).To(BeNumerically("~", 0.002, 1e-15))
		Expect(values[2]).To(Equal(0.003))

		Expect((&ParameterSweep{Min: 5, Max: 9, Steps: 1}).Values()).To(Equal([]float64{5}))
	})

	It("runs one experiment per value", func() {
		sw := &ParameterSweep{Base: smallBase(), Param: "viscosity", Min: 0.0005, Max: 0.002, Steps: 3}
		results, err := RunSweep(context.Background(), sw, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for i, r := range results {
			Expect(r.Value).To(Equal(sw.Values()[i]))
			Expect(r.Frames).To(Equal(2))
			Expect(r.Stable).To(BeTrue())
			Expect(r.Metrics).To(HaveKey("enstrophy_decay"))
		}
	})

	It("fails on parameters the config does not know", func() {
		sw := &ParameterSweep{Base: smallBase(), Param: "gravity", Min: 1, Max: 2, Steps: 2}
		_, err := RunSweep(context.Background(), sw, nil)
		Expect(err).To(MatchError(config.ErrUnknownParam))
	})

	It("needs a base configuration", func() {
		_, err := RunSweep(context.Background(), &ParameterSweep{Param: "dt", Steps: 2}, nil)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("MonteCarlo", func() {
	It("is reproducible for a fixed seed", func() {
		mc := &MonteCarloConfig{Base: smallBase(), Jitter: 0.05, Trials: 3, Seed: 7}

		a, err := RunMonteCarlo(context.Background(), mc, nil)
		Expect(err).NotTo(HaveOccurred())
		b, err := RunMonteCarlo(context.Background(), mc, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(a).To(HaveLen(3))
		for i := range a {
			Expect(a[i].Trial).To(Equal(i))
			Expect(a[i].Vortices).To(Equal(b[i].Vortices))
		}
		Expect(a[0].Vortices).NotTo(Equal(a[1].Vortices))
	})

	It("keeps perturbed vortices inside the unit square", func() {
		mc := &MonteCarloConfig{Base: smallBase(), Jitter: 2, Trials: 4, Seed: 3}
		results, err := RunMonteCarlo(context.Background(), mc, nil)
		Expect(err).NotTo(HaveOccurred())
		for _, r := range results {
			for _, v := range r.Vortices {
				Expect(v.X).To(BeNumerically(">=", 0))
				Expect(v.X).To(BeNumerically("<=", 1))
				Expect(v.Y).To(BeNumerically(">=", 0))
				Expect(v.Y).To(BeNumerically("<=", 1))
			}
		}
	})

	It("does not move vortices without jitter", func() {
		base := smallBase()
		results, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{Base: base, Trials: 2, Seed: 1}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(results[1].Vortices).To(Equal(base.Vortices))

		stableCount, unstableCount := MonteCarloStats(results)
		Expect(stableCount).To(Equal(2))
		Expect(unstableCount).To(Equal(0))
	})
})
