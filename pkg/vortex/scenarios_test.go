package vortex_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vortsim/internal/analysis"
	"github.com/san-kum/vortsim/pkg/vortex"
)

var _ = Describe("Simulation", func() {
	var sim *vortex.Simulation

	newSim := func(n int, opts ...vortex.Option) *vortex.Simulation {
		s, err := vortex.New(n, 0.0008, opts...)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	// contrast is (max-min)/|mean| over the interior cells.
	contrast := func(g vortex.Grid, w []float64) float64 {
		lo, hi := g.Interior()
		top, bottom := math.Inf(-1), math.Inf(1)
		for y := lo; y < hi; y++ {
			for x := lo; x < hi; x++ {
				c := w[g.Index(x, y)]
				top, bottom = math.Max(top, c), math.Min(bottom, c)
			}
		}
		mean := vortex.Circulation(g, w) / float64(g.InteriorCells())
		return (top - bottom) / math.Abs(mean)
	}

	Describe("a single vortex", func() {
		BeforeEach(func() {
			sim = newSim(64)
			sim.Inject(32, 32, 60)
		})

		It("survives a hundred frames without collapsing", func() {
			g := sim.Grid()
			start := vortex.Circulation(g, sim.Snapshot())
			Expect(start).To(BeNumerically(">", 0))

			for k := 0; k < 100; k++ {
				sim.Step(0.8)
			}

			w := sim.Snapshot()
			Expect(w).To(HaveLen(64 * 64))
			Expect(vortex.Variance(w)).To(BeNumerically(">", 1e-12))
			Expect(math.Abs(vortex.Circulation(g, w)/start - 1)).To(BeNumerically("<", 0.05))
			Expect(sim.Frame()).To(Equal(100))

			// the core stands out from the background it has spread into
			Expect(contrast(g, w)).To(BeNumerically(">", 0.03))
			Expect(vortex.Peak(g, w)).To(BeNumerically(">", vortex.Circulation(g, w)/float64(g.InteriorCells())))
		})

		It("loses most of its circulation without the correction", func() {
			sim = newSim(64, vortex.WithCirculationCorrection(false))
			sim.Inject(32, 32, 60)
			g := sim.Grid()
			start := vortex.Circulation(g, sim.Snapshot())

			for k := 0; k < 100; k++ {
				sim.Step(0.8)
			}

			ratio := vortex.Circulation(g, sim.Snapshot()) / start
			Expect(ratio).To(BeNumerically(">", 0.02))
			Expect(ratio).To(BeNumerically("<", 0.5))
		})

		It("keeps every cell finite", func() {
			for k := 0; k < 50; k++ {
				sim.Step(0.8)
			}
			for _, v := range sim.Snapshot() {
				Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
			}
		})

		It("produces a nearly divergence-free velocity", func() {
			sim.Step(0.8)
			d := sim.Diagnostics()
			Expect(d.MaxDivergence).To(BeNumerically("<", 1e-9))
			Expect(d.KineticEnergy).To(BeNumerically(">", 0))
		})
	})

	Describe("a counter-rotating pair", func() {
		BeforeEach(func() {
			sim = newSim(64)
			sim.Inject(28, 32, 60)
			sim.Inject(36, 32, -60)
		})

		It("moves both cores", func() {
			g := sim.Grid()
			pos0, ok := analysis.Centroid(g, sim.Snapshot(), 1)
			Expect(ok).To(BeTrue())
			neg0, ok := analysis.Centroid(g, sim.Snapshot(), -1)
			Expect(ok).To(BeTrue())

			for k := 0; k < 20; k++ {
				sim.Step(0.8)
			}

			w := sim.Snapshot()
			pos, ok := analysis.Centroid(g, w, 1)
			Expect(ok).To(BeTrue())
			neg, ok := analysis.Centroid(g, w, -1)
			Expect(ok).To(BeTrue())

			Expect(pos.Distance(pos0)).To(BeNumerically(">", 1))
			Expect(neg.Distance(neg0)).To(BeNumerically(">", 1))
		})

		It("keeps the net circulation near zero", func() {
			for k := 0; k < 20; k++ {
				sim.Step(0.8)
			}
			Expect(math.Abs(sim.Diagnostics().Circulation)).To(BeNumerically("<", 1e-6))
		})
	})

	DescribeTable("boundary policies",
		func(b vortex.Boundary, n int) {
			s := newSim(n, vortex.WithBoundary(b))
			s.Inject(n/3, n/2, 20)
			s.Inject(-5, n+7, -8)
			for k := 0; k < 10; k++ {
				s.Step(0.8)
			}
			Expect(s.Snapshot()).To(HaveLen(n * n))
			Expect(s.Diagnostics().Peak).To(BeNumerically(">", 0))
		},
		Entry("wall", vortex.Wall, 48),
		Entry("periodic, even", vortex.Periodic, 48),
		Entry("periodic, odd", vortex.Periodic, 33),
	)
})
