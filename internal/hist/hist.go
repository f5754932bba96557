// Package hist derives the fixed binning scheme a corner animation uses
// for every frame: per-parameter axis extents over the whole chain, bin
// edges sized from the final timestep's spread, and pinned histogram
// y-limits so frames never rescale mid-animation.
package hist

import (
	"fmt"

	"github.com/bfarr/prism/internal/cube"
)

// DefaultFinalBins is the target number of bins covering the final
// timestep's distribution.
const DefaultFinalBins = 50

// Extent is a closed [Min, Max] axis range for one parameter.
type Extent struct {
	Min float64
	Max float64
}

func (e Extent) Width() float64 { return e.Max - e.Min }

// DegenerateError marks a parameter whose final-timestep distribution
// has no spread, which would produce a zero or negative bin count.
type DegenerateError struct {
	Param int
}

func (e DegenerateError) Error() string {
	return fmt.Sprintf("degenerate distribution: parameter %d has zero spread in final timestep", e.Param)
}

// Binning is the fixed per-parameter scheme shared by every frame.
type Binning struct {
	Extents []Extent
	// Edges[d] holds the strictly increasing left boundaries of
	// uniform bins spanning Extents[d]; the extent max closes the
	// last bin.
	Edges [][]float64
	// YMax[d] is 1.1x the final timestep's histogram peak, used as a
	// pinned upper y-limit on the diagonal axes.
	YMax []float64
}

// Compute builds the binning scheme for a cube. finalBins is the target
// bin count across the final timestep's spread; values < 1 fall back to
// DefaultFinalBins.
func Compute(c *cube.SampleCube, finalBins int) (*Binning, error) {
	if finalBins < 1 {
		finalBins = DefaultFinalBins
	}

	steps, _, dim := c.Shape()
	b := &Binning{
		Extents: make([]Extent, dim),
		Edges:   make([][]float64, dim),
		YMax:    make([]float64, dim),
	}

	for d := 0; d < dim; d++ {
		lo, hi := c.ParamRange(d)
		b.Extents[d] = Extent{Min: lo, Max: hi}

		finalLo, finalHi := c.StepRange(steps-1, d)
		binWidth := (finalHi - finalLo) / float64(finalBins)
		if binWidth <= 0 {
			return nil, DegenerateError{Param: d}
		}

		nbins := int((hi - lo) / binWidth)
		if nbins < 1 {
			return nil, DegenerateError{Param: d}
		}

		width := (hi - lo) / float64(nbins)
		edges := make([]float64, nbins)
		for i := range edges {
			edges[i] = lo + float64(i)*width
		}
		b.Edges[d] = edges

		final := c.ColumnCopy(steps-1, d)
		dens := Density(final, edges, hi)
		b.YMax[d] = 1.1 * Peak(dens)
	}

	return b, nil
}

// Density computes a normalized histogram of vals over the given left
// bin edges; max closes the last bin. The result has one entry per edge
// and integrates to one over the covered range.
func Density(vals, edges []float64, max float64) []float64 {
	counts := Counts(vals, edges, max)
	dens := make([]float64, len(counts))
	if len(vals) == 0 {
		return dens
	}
	width := binWidth(edges, max)
	norm := float64(len(vals)) * width
	for i, n := range counts {
		dens[i] = float64(n) / norm
	}
	return dens
}

// Counts bins vals over the given left edges. Values outside
// [edges[0], max] are dropped; a value equal to max lands in the last
// bin.
func Counts(vals, edges []float64, max float64) []int {
	counts := make([]int, len(edges))
	if len(edges) == 0 {
		return counts
	}
	lo := edges[0]
	width := binWidth(edges, max)
	for _, v := range vals {
		if v < lo || v > max {
			continue
		}
		i := int((v - lo) / width)
		if i >= len(edges) {
			i = len(edges) - 1
		}
		counts[i]++
	}
	return counts
}

// Peak returns the largest value in h, or zero for an empty histogram.
func Peak(h []float64) float64 {
	peak := 0.0
	for _, v := range h {
		if v > peak {
			peak = v
		}
	}
	return peak
}

func binWidth(edges []float64, max float64) float64 {
	if len(edges) > 1 {
		return edges[1] - edges[0]
	}
	return max - edges[0]
}
