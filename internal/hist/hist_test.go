package hist_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bfarr/prism/internal/cube"
	"github.com/bfarr/prism/internal/hist"
)

// gaussianCube builds a chain whose walkers spread out over time, so
// the final timestep has the widest distribution.
func gaussianCube(steps, walkers, dim int, seed int64) *cube.SampleCube {
	rng := rand.New(rand.NewSource(seed))
	c, err := cube.New(steps, walkers, dim)
	Expect(err).NotTo(HaveOccurred())
	for t := 0; t < steps; t++ {
		scale := 0.2 + float64(t)/float64(steps)
		for w := 0; w < walkers; w++ {
			for d := 0; d < dim; d++ {
				c.Set(t, w, d, float64(d)+scale*rng.NormFloat64())
			}
		}
	}
	return c
}

var _ = Describe("Compute", func() {
	var (
		c *cube.SampleCube
		b *hist.Binning
	)

	BeforeEach(func() {
		c = gaussianCube(20, 200, 3, 42)
		var err error
		b, err = hist.Compute(c, hist.DefaultFinalBins)
		Expect(err).NotTo(HaveOccurred())
	})

	It("produces one extent per parameter with min <= max", func() {
		Expect(b.Extents).To(HaveLen(3))
		for d, e := range b.Extents {
			Expect(e.Min).To(BeNumerically("<=", e.Max), "parameter %d", d)
			lo, hi := c.ParamRange(d)
			Expect(e.Min).To(Equal(lo))
			Expect(e.Max).To(Equal(hi))
		}
	})

	It("produces a positive, strictly increasing edge list per parameter", func() {
		for d, edges := range b.Edges {
			Expect(len(edges)).To(BeNumerically(">", 0), "parameter %d", d)
			for i := 1; i < len(edges); i++ {
				Expect(edges[i]).To(BeNumerically(">", edges[i-1]))
			}
			Expect(edges[0]).To(Equal(b.Extents[d].Min))
			Expect(edges[len(edges)-1]).To(BeNumerically("<", b.Extents[d].Max))
		}
	})

	It("pins the y-limit ten percent above the final frame's peak", func() {
		steps, _, _ := c.Shape()
		for d := range b.YMax {
			dens := hist.Density(c.ColumnCopy(steps-1, d), b.Edges[d], b.Extents[d].Max)
			Expect(b.YMax[d]).To(BeNumerically("~", 1.1*hist.Peak(dens), 1e-12))
			Expect(b.YMax[d]).To(BeNumerically(">=", hist.Peak(dens)))
		}
	})

	It("derives the bin count from the full extent over the final spread", func() {
		// Final width 2 over 8 target bins gives width 0.25; the full
		// extent width 4 then yields 16 bins. Quarter spacings keep
		// the floor division exact.
		c, err := cube.New(2, 9, 1)
		Expect(err).NotTo(HaveOccurred())
		for w := 0; w < 9; w++ {
			c.Set(0, w, 0, -2.0+0.5*float64(w)) // [-2, 2]
			c.Set(1, w, 0, 0.25*float64(w))     // [0, 2]
		}
		b, err := hist.Compute(c, 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Edges[0]).To(HaveLen(16))
		Expect(b.Edges[0][0]).To(Equal(-2.0))
		Expect(b.Edges[0][1] - b.Edges[0][0]).To(BeNumerically("~", 0.25, 1e-12))
	})

	It("rejects a parameter that is constant in the final timestep", func() {
		c, err := cube.New(3, 8, 2)
		Expect(err).NotTo(HaveOccurred())
		for t := 0; t < 3; t++ {
			for w := 0; w < 8; w++ {
				c.Set(t, w, 0, float64(t*8+w))
				if t < 2 {
					c.Set(t, w, 1, float64(w))
				} else {
					c.Set(t, w, 1, 4.0) // collapsed
				}
			}
		}
		_, err = hist.Compute(c, 50)
		Expect(err).To(MatchError(hist.DegenerateError{Param: 1}))
	})
})

var _ = Describe("Density", func() {
	It("integrates to one over the covered range", func() {
		rng := rand.New(rand.NewSource(7))
		vals := make([]float64, 5000)
		for i := range vals {
			vals[i] = rng.Float64() * 10
		}
		edges := make([]float64, 25)
		for i := range edges {
			edges[i] = float64(i) * 0.4
		}
		dens := hist.Density(vals, edges, 10)

		total := 0.0
		for _, v := range dens {
			total += v * 0.4
		}
		Expect(total).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("puts a value equal to the closing boundary in the last bin", func() {
		counts := hist.Counts([]float64{2.0}, []float64{0, 1}, 2.0)
		Expect(counts).To(Equal([]int{0, 1}))
	})

	It("drops values outside the covered range", func() {
		counts := hist.Counts([]float64{-0.5, 2.5, 0.5}, []float64{0, 1}, 2.0)
		Expect(counts).To(Equal([]int{1, 0}))
	})
})
