// Package demo generates sample chains for trying out the animator: an
// ensemble of random-walk Metropolis walkers converging on a Gaussian
// target, recorded at every timestep.
package demo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/bfarr/prism/internal/cube"
)

// Target is an independent multivariate Gaussian.
type Target struct {
	Means  []float64
	Sigmas []float64
}

func Gaussian(means, sigmas []float64) (Target, error) {
	if len(means) != len(sigmas) {
		return Target{}, fmt.Errorf("got %d means but %d sigmas", len(means), len(sigmas))
	}
	for i, s := range sigmas {
		if s <= 0 {
			return Target{}, fmt.Errorf("sigma %d must be positive, got %g", i, s)
		}
	}
	return Target{Means: means, Sigmas: sigmas}, nil
}

func (t Target) Dim() int { return len(t.Means) }

func (t Target) logProb(x []float64) float64 {
	lp := 0.0
	for d := range x {
		z := (x[d] - t.Means[d]) / t.Sigmas[d]
		lp -= 0.5 * z * z
	}
	return lp
}

// Sampler runs independent random-walk Metropolis chains, one per
// walker.
type Sampler struct {
	target Target
	step   float64
	rng    *rand.Rand
}

// NewSampler creates a sampler with the given proposal scale (as a
// fraction of each parameter's sigma).
func NewSampler(target Target, step float64, seed int64) *Sampler {
	if step <= 0 {
		step = 0.5
	}
	return &Sampler{
		target: target,
		step:   step,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Run samples a (steps, walkers, dim) cube. Walkers start scattered
// uniformly within five sigma of the target means, so early frames show
// a broad cloud collapsing onto the posterior.
func (s *Sampler) Run(steps, walkers int) (*cube.SampleCube, error) {
	dim := s.target.Dim()
	c, err := cube.New(steps, walkers, dim)
	if err != nil {
		return nil, err
	}

	state := make([][]float64, walkers)
	logp := make([]float64, walkers)
	for w := range state {
		x := make([]float64, dim)
		for d := range x {
			x[d] = s.target.Means[d] + 5*s.target.Sigmas[d]*(2*s.rng.Float64()-1)
		}
		state[w] = x
		logp[w] = s.target.logProb(x)
	}

	proposal := make([]float64, dim)
	for t := 0; t < steps; t++ {
		for w := 0; w < walkers; w++ {
			x := state[w]
			for d := range proposal {
				proposal[d] = x[d] + s.step*s.target.Sigmas[d]*s.rng.NormFloat64()
			}
			newLogp := s.target.logProb(proposal)

			a := math.Exp(newLogp - logp[w])
			if a >= 1 || s.rng.Float64() < a {
				copy(x, proposal)
				logp[w] = newLogp
			}

			for d := range x {
				c.Set(t, w, d, x[d])
			}
		}
	}

	return c, nil
}
