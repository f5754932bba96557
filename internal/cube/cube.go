package cube

import (
	"fmt"
	"math"
)

// SampleCube holds T timesteps of N walkers sampling a D-dimensional
// distribution. Samples are stored flat in timestep-major, walker-major
// order, so the value for (t, w, p) lives at (t*N+w)*D + p.
type SampleCube struct {
	data    []float64
	steps   int
	walkers int
	dim     int
}

func New(steps, walkers, dim int) (*SampleCube, error) {
	if steps < 1 || walkers < 1 || dim < 1 {
		return nil, fmt.Errorf("invalid cube shape (%d, %d, %d): all dimensions must be positive", steps, walkers, dim)
	}
	return &SampleCube{
		data:    make([]float64, steps*walkers*dim),
		steps:   steps,
		walkers: walkers,
		dim:     dim,
	}, nil
}

// FromSlice wraps an existing flat sample buffer without copying.
func FromSlice(data []float64, steps, walkers, dim int) (*SampleCube, error) {
	c, err := New(steps, walkers, dim)
	if err != nil {
		return nil, err
	}
	if len(data) != steps*walkers*dim {
		return nil, fmt.Errorf("cube data length %d does not match shape (%d, %d, %d)", len(data), steps, walkers, dim)
	}
	c.data = data
	return c, nil
}

func (c *SampleCube) Shape() (steps, walkers, dim int) {
	return c.steps, c.walkers, c.dim
}

func (c *SampleCube) Steps() int   { return c.steps }
func (c *SampleCube) Walkers() int { return c.walkers }
func (c *SampleCube) Dim() int     { return c.dim }

func (c *SampleCube) At(step, walker, param int) float64 {
	return c.data[(step*c.walkers+walker)*c.dim+param]
}

func (c *SampleCube) Set(step, walker, param int, v float64) {
	c.data[(step*c.walkers+walker)*c.dim+param] = v
}

// Column copies the values of one parameter across all walkers at the
// given timestep into dst, which must have length Walkers().
func (c *SampleCube) Column(dst []float64, step, param int) {
	base := step * c.walkers * c.dim
	for w := 0; w < c.walkers; w++ {
		dst[w] = c.data[base+w*c.dim+param]
	}
}

// ColumnCopy is Column with a fresh slice.
func (c *SampleCube) ColumnCopy(step, param int) []float64 {
	dst := make([]float64, c.walkers)
	c.Column(dst, step, param)
	return dst
}

// ParamRange returns the (min, max) of a parameter over every timestep
// and walker.
func (c *SampleCube) ParamRange(param int) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for i := param; i < len(c.data); i += c.dim {
		v := c.data[i]
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// StepRange returns the (min, max) of a parameter at a single timestep.
func (c *SampleCube) StepRange(step, param int) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	base := step * c.walkers * c.dim
	for w := 0; w < c.walkers; w++ {
		v := c.data[base+w*c.dim+param]
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Thin returns a new cube keeping every stride-th timestep, starting
// with timestep 0. A stride of 1 or less returns the receiver unchanged.
func (c *SampleCube) Thin(stride int) *SampleCube {
	if stride <= 1 {
		return c
	}
	kept := (c.steps + stride - 1) / stride
	out := &SampleCube{
		data:    make([]float64, kept*c.walkers*c.dim),
		steps:   kept,
		walkers: c.walkers,
		dim:     c.dim,
	}
	frame := c.walkers * c.dim
	for i := 0; i < kept; i++ {
		src := i * stride * frame
		copy(out.data[i*frame:(i+1)*frame], c.data[src:src+frame])
	}
	return out
}

// IsValid reports whether the cube is free of NaN and Inf values.
func (c *SampleCube) IsValid() bool {
	for _, v := range c.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
